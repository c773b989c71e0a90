package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/chudadi/internal/gesture"
	"github.com/palemoky/chudadi/internal/sound"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Mute):
		if mu, ok := m.sound.(sound.Muter); ok {
			mu.SetMute(!mu.Muted())
		}
		return nil
	}

	// 标题画面和结束画面：回车或 n 开新局
	if m.phase == PhaseTitle || m.result != nil {
		if key.Matches(msg, m.keys.NewGame, m.keys.Play) {
			return m.startGame()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.NewGame):
		return m.startGame()
	case key.Matches(msg, m.keys.Play):
		return m.play()
	case key.Matches(msg, m.keys.Pass):
		return m.pass()
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		// 与单击同样的单张切换
		m.sess.Toggle(m.cursor)
	case key.Matches(msg, m.keys.Clear):
		if !m.sess.Locked() {
			m.sess.ClearSelection()
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ev, ok := gesture.FromMouse(msg)
	if !ok {
		return nil
	}
	return m.handlePointer(ev)
}

// handlePointer 鼠标和触摸的统一入口
func (m *Model) handlePointer(ev gesture.PointerEvent) tea.Cmd {
	// 按钮只响应按下，且不参与拖动
	if ev.Phase == gesture.Press && !m.tracker.Recognizer().Active() {
		switch m.layout.ButtonAt(ev.X, ev.Y) {
		case btnPlay:
			return m.play()
		case btnPass:
			return m.pass()
		case btnNew:
			return m.startGame()
		}
	}

	if m.phase != PhasePlaying {
		return nil
	}
	res := m.tracker.Handle(ev, m.sess.Locked())
	switch {
	case len(res.Toggled) > 0:
		m.sess.ToggleMany(res.Toggled)
	case res.Click != gesture.NoItem:
		m.sess.Toggle(res.Click)
		m.cursor = res.Click
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.sess.HandSize()
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	}
}

// toggleTheme 切换明暗并保存
func (m *Model) toggleTheme() tea.Cmd {
	mode := m.styles.mode.Toggle()
	m.styles = newStyles(mode)
	ctx, store := m.ctx, m.themes
	return func() tea.Msg {
		return themeSavedMsg{Err: store.Save(ctx, mode)}
	}
}
