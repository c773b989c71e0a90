//go:build ci

package sound

// DefaultDir 音频文件目录
const DefaultDir = "assets/sounds"

// Manager CI 环境下没有音频设备，全部为空操作
type Manager struct{ mute bool }

func NewManager(_ string, mute bool) *Manager { return &Manager{mute: mute} }

func (m *Manager) Init() error { return nil }

func (m *Manager) Play(Cue) {}

func (m *Manager) SetMute(mute bool) { m.mute = mute }

func (m *Manager) Muted() bool { return true }

func (m *Manager) Close() {}
