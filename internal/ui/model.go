package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/config"
	"github.com/palemoky/chudadi/internal/gesture"
	"github.com/palemoky/chudadi/internal/logger"
	"github.com/palemoky/chudadi/internal/playback"
	"github.com/palemoky/chudadi/internal/protocol"
	"github.com/palemoky/chudadi/internal/reconcile"
	"github.com/palemoky/chudadi/internal/session"
	"github.com/palemoky/chudadi/internal/sound"
	"github.com/palemoky/chudadi/internal/theme"
	"github.com/palemoky/chudadi/internal/transport"
)

// Phase 界面阶段
type Phase int

const (
	PhaseTitle   Phase = iota // 标题画面
	PhasePlaying              // 对局中（包括结束后的结果）
)

// zone 某个座位最近一次出的牌
type zone struct {
	shown bool
	pass  bool
	cards []card.Card
}

// Model 主界面
type Model struct {
	ctx       context.Context
	cfg       *config.Config
	transport transport.Transport
	themes    theme.Store
	sound     sound.Player
	delay     playback.DelayFunc
	darkBg    func() bool

	phase      Phase
	sess       *session.Session
	tracker    *gesture.Tracker
	scheduler  *playback.Scheduler
	reconciler *reconcile.Controller

	aff        reconcile.Affordances
	active     int
	zones      [protocol.SeatCount]zone
	highlight  map[int]bool
	cursor     int
	message    string
	messageSeq int
	result     *reconcile.ResultMsg
	requesting bool

	styles  styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	layout  layout

	width, height int
}

type silent struct{}

func (silent) Play(sound.Cue) {}

// New 创建主界面
func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	delay := opts.Delay
	if delay == nil {
		delay = playback.Tick
	}
	player := opts.Sound
	if player == nil {
		player = silent{}
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewFileStore(cfg.Theme.File, cfg.Theme.Key)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:       ctx,
		cfg:       cfg,
		transport: opts.Transport,
		themes:    themes,
		sound:     player,
		delay:     delay,
		darkBg:    opts.DarkBackground,
		phase:     PhaseTitle,
		sess:      session.New(),
		active:    reconcile.NoSeat,
		aff:       reconcile.Affordances{ActiveSeat: reconcile.NoSeat},
		highlight: make(map[int]bool),
		styles:    newStyles(theme.Light),
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
	}
	m.tracker = gesture.NewTracker(gesture.New(m), &m.layout)
	m.scheduler = playback.New(m, cfg.Timing.StepDelayDuration(), cfg.Timing.SettleDelayDuration(), delay)
	m.reconciler = reconcile.New(cfg.Timing.ResultDelayDuration(), delay)
	return m
}

// Init 读取主题偏好
func (m *Model) Init() tea.Cmd {
	ctx, store, detect := m.ctx, m.themes, m.darkBg
	return func() tea.Msg {
		return themeLoadedMsg{Mode: theme.Resolve(ctx, store, detect)}
	}
}

// Update 处理消息
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case NewGameResultMsg:
		return m, m.handleNewGame(msg)

	case TurnResultMsg:
		return m, m.handleTurn(msg)

	case playback.StepMsg, playback.DoneMsg:
		return m, m.scheduler.Update(msg)

	case reconcile.ResultMsg:
		return m, m.handleResult(msg)

	case ClearMessageMsg:
		if msg.Seq == m.messageSeq {
			m.message = ""
		}
		return m, nil

	case busyTickMsg:
		if !m.requesting {
			return m, nil
		}
		m.spinner, _ = m.spinner.Update(spinner.TickMsg{})
		return m, m.delay(m.spinner.Spinner.FPS, busyTickMsg{})

	case themeLoadedMsg:
		m.styles = newStyles(msg.Mode)
		return m, nil

	case themeSavedMsg:
		if msg.Err != nil {
			logger.LogError("保存主题失败: %v", msg.Err)
		}
		return m, nil
	}
	return m, nil
}

// --- gesture.Highlighter ---

// Highlight 拖动经过的牌临时高亮
func (m *Model) Highlight(index int) { m.highlight[index] = true }

// ClearHighlights 清除临时高亮
func (m *Model) ClearHighlights() { clear(m.highlight) }

// --- 访问器，主要给测试用 ---

// Session 当前会话
func (m *Model) Session() *session.Session { return m.sess }

// Affordances 当前可用操作
func (m *Model) Affordances() reconcile.Affordances { return m.aff }

// Message 当前提示
func (m *Model) Message() string { return m.message }

// Phase 当前阶段
func (m *Model) Phase() Phase { return m.phase }

// Theme 当前主题
func (m *Model) Theme() theme.Mode { return m.styles.mode }

// CanPlay 出牌按钮可用
func (m *Model) CanPlay() bool { return m.aff.Play && !m.sess.Locked() }

// CanPass 不出按钮可用
func (m *Model) CanPass() bool { return m.aff.Pass && !m.sess.Locked() }

// setMessage 替换提示并在超时后清除
func (m *Model) setMessage(text string) tea.Cmd {
	m.message = text
	m.messageSeq++
	if text == "" {
		return nil
	}
	return m.delay(m.cfg.Timing.MessageTimeoutDuration(), ClearMessageMsg{Seq: m.messageSeq})
}
