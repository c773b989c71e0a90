package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chudadi/internal/config"
	"github.com/palemoky/chudadi/internal/sound"
	"github.com/palemoky/chudadi/internal/testutil"
	"github.com/palemoky/chudadi/internal/theme"
)

// pending 假时钟上挂起的定时消息
type pending struct {
	due time.Duration
	seq int
	msg tea.Msg
}

type cueRecorder struct {
	played []sound.Cue
	mute   bool
}

func (c *cueRecorder) Play(q sound.Cue)  { c.played = append(c.played, q) }
func (c *cueRecorder) SetMute(mute bool) { c.mute = mute }
func (c *cueRecorder) Muted() bool       { return c.mute }

func (c *cueRecorder) count(q sound.Cue) int {
	n := 0
	for _, p := range c.played {
		if p == q {
			n++
		}
	}
	return n
}

// harness 用假时钟驱动 Model：定时消息只在 advance 时送达，其它命令立即执行
type harness struct {
	t      *testing.T
	ctx    context.Context
	m      *Model
	tr     *testutil.MockTransport
	cues   *cueRecorder
	themes *theme.FileStore

	now    time.Duration
	seq    int
	timers []pending
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		ctx:    t.Context(),
		tr:     &testutil.MockTransport{},
		cues:   &cueRecorder{},
		themes: theme.NewFileStore(filepath.Join(t.TempDir(), "theme.yaml"), "pk-theme"),
	}
	h.m = New(Options{
		Context:        h.ctx,
		Config:         config.Default(),
		Transport:      h.tr,
		Themes:         h.themes,
		Sound:          h.cues,
		Delay:          h.delay,
		DarkBackground: func() bool { return false },
	})
	h.run(h.m.Init())
	h.update(tea.WindowSizeMsg{Width: 100, Height: 40})
	t.Cleanup(func() { h.tr.AssertExpectations(t) })
	return h
}

func (h *harness) delay(d time.Duration, msg tea.Msg) tea.Cmd {
	h.seq++
	h.timers = append(h.timers, pending{due: h.now + d, seq: h.seq, msg: msg})
	return nil
}

func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(h.t, i, 1000, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := h.m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) update(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.run(cmd)
}

// advance 推进假时钟，按到期顺序送达定时消息
func (h *harness) advance(d time.Duration) {
	target := h.now + d
	for {
		idx := -1
		for i, p := range h.timers {
			if p.due > target {
				continue
			}
			if idx < 0 || p.due < h.timers[idx].due || (p.due == h.timers[idx].due && p.seq < h.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		p := h.timers[idx]
		h.timers = append(h.timers[:idx], h.timers[idx+1:]...)
		h.now = p.due
		h.update(p.msg)
	}
	h.now = target
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.update(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// cardPos 第 i 张牌牌面的屏幕坐标，先渲染一帧刷新布局
func (h *harness) cardPos(i int) (int, int) {
	h.m.View()
	c := h.m.layout.cells[i]
	return c.x0 + 1, h.m.layout.handTop + 1
}

func (h *harness) mouse(action tea.MouseAction, x, y int) {
	h.update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func (h *harness) click(i int) {
	x, y := h.cardPos(i)
	h.mouse(tea.MouseActionPress, x, y)
	h.mouse(tea.MouseActionRelease, x, y)
}

func (h *harness) drag(indices ...int) {
	x, y := h.cardPos(indices[0])
	h.mouse(tea.MouseActionPress, x, y)
	for _, i := range indices[1:] {
		x, y = h.cardPos(i)
		h.mouse(tea.MouseActionMotion, x, y)
	}
	h.mouse(tea.MouseActionRelease, x, y)
}
