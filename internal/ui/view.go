package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/playback"
	"github.com/palemoky/chudadi/internal/protocol"
	"github.com/palemoky/chudadi/internal/theme"
)

const title = "♠ ♥ 锄 大 地 ♣ ♦"

// frame 按行拼接画面，记录每块内容的起始行
type frame struct {
	lines []string
}

func (f *frame) add(block string) {
	pad := strings.Repeat(" ", indent)
	for _, l := range strings.Split(block, "\n") {
		f.lines = append(f.lines, pad+l)
	}
}

func (f *frame) row() int { return len(f.lines) }

func (f *frame) String() string { return strings.Join(f.lines, "\n") }

// View 渲染界面，同时更新命中测试用的布局
func (m *Model) View() string {
	if m.phase == PhaseTitle {
		return m.titleView()
	}

	var f frame
	f.add(m.renderHeader())
	f.add("")
	f.add(m.renderOpponents())
	f.add(m.renderHumanSeat())
	f.add(m.renderMessage())
	if m.result != nil {
		f.add(m.renderResult())
	}
	f.add("")

	handTop := f.row()
	f.add(m.renderMarkers())
	f.add(m.renderHand())
	f.add("")

	buttonRow := f.row()
	bar, buttons := m.renderButtons()
	f.add(bar)
	f.add("")
	f.add(m.help.View(m.keys))

	m.layout = layout{
		handTop:   handTop,
		cells:     cardCells(m.sess.HandSize()),
		buttonRow: buttonRow,
		buttons:   buttons,
	}
	return f.String()
}

func (m *Model) titleView() string {
	var f frame
	f.add("")
	f.add(m.styles.title.Render(title))
	f.add("")
	f.add(m.styles.banner.Render("你和三位电脑对手，先出完手牌的一方获胜"))
	f.add("")

	buttonRow := f.row()
	label := m.styles.button.Render("开始游戏")
	f.add(label)
	f.add("")
	f.add(m.styles.muted.Render(fmt.Sprintf("enter 开始 · t 明暗(%s) · q 退出", modeName(m.styles.mode))))

	m.layout = layout{
		buttonRow: buttonRow,
		buttons:   []buttonSpan{{b: btnNew, span: span{x0: indent, x1: indent + lipgloss.Width(label)}}},
	}
	return f.String()
}

func modeName(mode theme.Mode) string {
	if mode == theme.Dark {
		return "暗"
	}
	return "明"
}

func (m *Model) renderHeader() string {
	head := m.styles.title.Render(title)
	turn := m.sess.Turn()
	if m.sess.Dealt() && !turn.HasWinner() && turn.CurrentPlayer >= 0 {
		head += "    " + m.styles.banner.Render("当前: "+playback.SeatName(turn.CurrentPlayer))
		if cards, seat, ok := m.sess.LastPlay(); ok && !turn.IsFree {
			head += "    " + m.styles.muted.Render("要压: "+playback.SeatName(seat)+" ") +
				m.renderPlayed(zone{shown: true, cards: cards})
		}
	}
	if m.requesting {
		head += "  " + m.spinner.View()
	}
	return head
}

// faceText 牌面文字，王显示中文
func faceText(c card.Card) string {
	if c.Suit == card.Joker {
		return c.Label()
	}
	return c.String()
}

func (m *Model) cardStyle(c card.Card) lipgloss.Style {
	if c.Color() == card.Red {
		return m.styles.red
	}
	return m.styles.black
}

// renderPlayed 出牌区的牌，不定宽
func (m *Model) renderPlayed(z zone) string {
	if !z.shown {
		return ""
	}
	if z.pass {
		return m.styles.pass.Render("不出")
	}
	parts := make([]string, len(z.cards))
	for i, c := range z.cards {
		fg := m.styles.p.Black
		if c.Color() == card.Red {
			fg = m.styles.p.Red
		}
		parts[i] = lipgloss.NewStyle().Foreground(fg).Bold(true).Render(faceText(c))
	}
	return strings.Join(parts, " ")
}

func (m *Model) seatTitle(seat int) string {
	name := playback.SeatName(seat)
	if seat == m.active {
		name += " ●"
	}
	return name
}

func (m *Model) renderOpponents() string {
	counts := m.sess.Counts()
	boxes := make([]string, 0, protocol.SeatCount-1)
	for seat := 1; seat < protocol.SeatCount; seat++ {
		style := m.styles.seat
		if seat == m.active {
			style = m.styles.seatActive
		}
		body := fmt.Sprintf("%s\n剩余 %d 张\n%s", m.seatTitle(seat), counts[seat], m.renderPlayed(m.zones[seat]))
		boxes = append(boxes, style.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *Model) renderHumanSeat() string {
	counts := m.sess.Counts()
	line := fmt.Sprintf("%s  剩余 %d 张", m.seatTitle(protocol.HumanSeat), counts[protocol.HumanSeat])
	if played := m.renderPlayed(m.zones[protocol.HumanSeat]); played != "" {
		line += "  " + played
	}
	if m.active == protocol.HumanSeat {
		return m.styles.title.Render(line)
	}
	return m.styles.banner.Render(line)
}

func (m *Model) renderMessage() string {
	if m.message == "" {
		return " "
	}
	return m.styles.message.Render(m.message)
}

func (m *Model) renderResult() string {
	text := resultText(m.result)
	hint := m.styles.muted.Render("enter / n 再来一局")
	if m.result.HumanWon() {
		return m.styles.win.Render(text) + "\n" + hint
	}
	return m.styles.lose.Render(text) + "\n" + hint
}

// renderMarkers 选中的牌上方画 ▲，光标画 △
func (m *Model) renderMarkers() string {
	n := m.sess.HandSize()
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		mark := " "
		switch {
		case m.sess.IsSelected(i):
			mark = "▲"
		case i == m.cursor:
			mark = "△"
		}
		cell := lipgloss.PlaceHorizontal(cardWidth, lipgloss.Center, mark)
		if i == m.cursor {
			cell = m.styles.cursor.Render(cell)
		}
		sb.WriteString(cell)
		if i < n-1 {
			sb.WriteString(strings.Repeat(" ", cardGap))
		}
	}
	return sb.String()
}

func (m *Model) renderHand() string {
	hand := m.sess.Hand()
	if len(hand) == 0 {
		return m.styles.muted.Render("(没有手牌)")
	}
	var sb strings.Builder
	for i, c := range hand {
		style := m.cardStyle(c)
		switch {
		case m.highlight[i]:
			style = style.Background(m.styles.p.Touched)
		case m.sess.IsSelected(i):
			style = style.Background(m.styles.p.Selected)
		}
		sb.WriteString(style.Render(faceText(c)))
		if i < len(hand)-1 {
			sb.WriteString(strings.Repeat(" ", cardGap))
		}
	}
	return sb.String()
}

// renderButtons 渲染按钮行并返回各按钮的列区间
func (m *Model) renderButtons() (string, []buttonSpan) {
	type item struct {
		b       button
		label   string
		enabled bool
	}
	items := []item{
		{btnPlay, "出牌", m.CanPlay()},
		{btnPass, "不出", m.CanPass()},
		{btnNew, "新局", true},
	}

	const sep = "  "
	var (
		sb    strings.Builder
		spans []buttonSpan
		x     = indent
	)
	for i, it := range items {
		style := m.styles.disabled
		if it.enabled {
			style = m.styles.button
		}
		rendered := style.Render(it.label)
		w := lipgloss.Width(rendered)
		if it.enabled {
			spans = append(spans, buttonSpan{b: it.b, span: span{x0: x, x1: x + w}})
		}
		sb.WriteString(rendered)
		x += w
		if i < len(items)-1 {
			sb.WriteString(sep)
			x += len(sep)
		}
	}
	return sb.String(), spans
}
