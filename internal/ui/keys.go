package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap 键位
type keyMap struct {
	Play    key.Binding
	Pass    key.Binding
	NewGame key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Clear   key.Binding
	Theme   key.Binding
	Mute    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter/p", "出牌"),
		),
		Pass: key.NewBinding(
			key.WithKeys("x", "s"),
			key.WithHelp("x", "不出"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "新局"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "左移"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "右移"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "选牌"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "取消选择"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "明暗"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "静音"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "帮助"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "退出"),
		),
	}
}

// ShortHelp 实现 help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Pass, k.Toggle, k.NewGame, k.Help, k.Quit}
}

// FullHelp 实现 help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Pass, k.NewGame},
		{k.Left, k.Right, k.Toggle, k.Clear},
		{k.Theme, k.Mute, k.Help, k.Quit},
	}
}
