//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/palemoky/chudadi/internal/logger"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 90 * time.Millisecond
)

// DefaultDir 音频文件目录，文件名即音效名（deal.wav、bomb.mp3 …）
const DefaultDir = "assets/sounds"

var standardFormat = beep.Format{
	SampleRate:  sampleRate,
	NumChannels: 2,
	Precision:   2,
}

// Manager 音效管理
type Manager struct {
	dir     string
	mute    bool
	enabled bool
	buffers map[Cue]*beep.Buffer
}

// NewManager 创建音效管理器，mute 时不初始化扬声器
func NewManager(dir string, mute bool) *Manager {
	if dir == "" {
		dir = DefaultDir
	}
	return &Manager{dir: dir, mute: mute, buffers: make(map[Cue]*beep.Buffer)}
}

// Init 初始化扬声器并加载音效，失败时保持静音
func (m *Manager) Init() error {
	if m.mute {
		return nil
	}
	// 小缓冲区降低延迟
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("初始化扬声器失败: %w", err)
	}
	m.enabled = true

	if err := m.loadFiles(); err != nil {
		logger.LogError("加载音效失败: %v", err)
	}
	for _, c := range Cues {
		if _, ok := m.buffers[c]; ok {
			continue
		}
		buf, err := synthesize(fallbackTones[c])
		if err != nil {
			return err
		}
		m.buffers[c] = buf
	}
	return nil
}

func (m *Manager) loadFiles() error {
	files, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取音效目录失败: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		cue := Cue(strings.TrimSuffix(name, filepath.Ext(name)))
		buf, err := m.loadFile(filepath.Join(m.dir, name), ext)
		if err != nil {
			logger.WithField("file", name).Warnf("跳过音效: %v", err)
			continue
		}
		m.buffers[cue] = buf
	}
	return nil
}

func (m *Manager) loadFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(standardFormat)
	buf.Append(resampled)
	return buf, nil
}

// synthesize 按顺序拼接几个短音
func synthesize(freqs []float64) (*beep.Buffer, error) {
	buf := beep.NewBuffer(standardFormat)
	for _, freq := range freqs {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, fmt.Errorf("合成 %.0fHz 失败: %w", freq, err)
		}
		buf.Append(beep.Take(sampleRate.N(toneLength), tone))
	}
	return buf, nil
}

// Play 播放音效，静音或未初始化时忽略
func (m *Manager) Play(c Cue) {
	if !m.enabled || m.mute {
		return
	}
	buf, ok := m.buffers[c]
	if !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

// SetMute 开关静音
func (m *Manager) SetMute(mute bool) { m.mute = mute }

// Muted 是否静音
func (m *Manager) Muted() bool { return m.mute || !m.enabled }

// Close 停止播放
func (m *Manager) Close() {
	if m.enabled {
		speaker.Clear()
	}
	m.enabled = false
}
