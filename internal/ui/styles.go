package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/chudadi/internal/theme"
)

// palette 一套主题颜色
type palette struct {
	CardBg   lipgloss.Color
	Red      lipgloss.Color
	Black    lipgloss.Color
	Selected lipgloss.Color
	Touched  lipgloss.Color
	Accent   lipgloss.Color
	Muted    lipgloss.Color
	Text     lipgloss.Color
	Win      lipgloss.Color
	Lose     lipgloss.Color
}

var palettes = map[theme.Mode]palette{
	theme.Light: {
		CardBg:   "#FFFFFF",
		Red:      "#CD0000",
		Black:    "#1E1E1E",
		Selected: "#FFD75F",
		Touched:  "#87D7FF",
		Accent:   "#005FAF",
		Muted:    "#8A8A8A",
		Text:     "#262626",
		Win:      "#D4A520",
		Lose:     "#5A6678",
	},
	theme.Dark: {
		CardBg:   "#2E3440",
		Red:      "#FF6B6B",
		Black:    "#E5E9F0",
		Selected: "#8F6D00",
		Touched:  "#005F87",
		Accent:   "#88C0D0",
		Muted:    "#6C7A89",
		Text:     "#ECEFF4",
		Win:      "#F5C542",
		Lose:     "#9AA5B1",
	},
}

// 每张牌占的列数，两张牌之间空一列
const (
	cardWidth = 5
	cardGap   = 1
	indent    = 2
)

// styles 由 palette 生成的样式
type styles struct {
	mode theme.Mode
	p    palette

	red, black       lipgloss.Style
	cursor           lipgloss.Style
	title            lipgloss.Style
	banner           lipgloss.Style
	seat, seatActive lipgloss.Style
	pass             lipgloss.Style
	message          lipgloss.Style
	button, disabled lipgloss.Style
	win, lose        lipgloss.Style
	muted            lipgloss.Style
}

func newStyles(mode theme.Mode) styles {
	p, ok := palettes[mode]
	if !ok {
		mode = theme.Light
		p = palettes[mode]
	}

	face := lipgloss.NewStyle().Width(cardWidth).Align(lipgloss.Center).Background(p.CardBg).Bold(true)
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(22)

	return styles{
		mode:       mode,
		p:          p,
		red:        face.Foreground(p.Red),
		black:      face.Foreground(p.Black),
		cursor:     lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		title:      lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		banner:     lipgloss.NewStyle().Foreground(p.Text),
		seat:       box.BorderForeground(p.Muted),
		seatActive: box.BorderForeground(p.Accent).Bold(true),
		pass:       lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		message:    lipgloss.NewStyle().Foreground(p.Accent),
		button:     lipgloss.NewStyle().Foreground(p.Text).Background(p.Selected).Padding(0, 1).Bold(true),
		disabled:   lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		win:        lipgloss.NewStyle().Foreground(p.Win).Bold(true).Border(lipgloss.DoubleBorder()).BorderForeground(p.Win).Padding(0, 2),
		lose:       lipgloss.NewStyle().Foreground(p.Lose).Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(p.Lose).Padding(0, 2),
		muted:      lipgloss.NewStyle().Foreground(p.Muted),
	}
}
