// Package reconcile commits an authoritative server snapshot into the
// session and derives what the human may do next.
package reconcile

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/chudadi/internal/logger"
	"github.com/palemoky/chudadi/internal/playback"
	"github.com/palemoky/chudadi/internal/protocol"
	"github.com/palemoky/chudadi/internal/session"
)

// NoSeat 没有活动座位
const NoSeat = -1

// Affordances 同步后可用的操作
type Affordances struct {
	Play       bool
	Pass       bool
	ActiveSeat int // 亮起的座位，分出胜负后为 NoSeat
}

// Derive 根据回合信息计算按钮状态
func Derive(t session.Turn) Affordances {
	a := Affordances{ActiveSeat: NoSeat}
	if t.HasWinner() {
		return a
	}
	if t.CurrentPlayer >= 0 && t.CurrentPlayer < protocol.SeatCount {
		a.ActiveSeat = t.CurrentPlayer
	}
	a.Play = t.IsHumanTurn()
	a.Pass = a.Play && !t.IsFree && !t.FirstTurn
	return a
}

// ResultMsg 延迟后展示胜负
type ResultMsg struct {
	SessionID string
	Winner    int
}

// HumanWon 是否人类玩家获胜
func (m ResultMsg) HumanWon() bool { return m.Winner == protocol.HumanSeat }

// Controller 同步控制器，保证每局结果只展示一次
type Controller struct {
	delay       playback.DelayFunc
	resultDelay time.Duration

	session string
	pending bool
	shown   bool
}

// New 创建控制器，delay 为 nil 时使用 playback.Tick
func New(resultDelay time.Duration, delay playback.DelayFunc) *Controller {
	if delay == nil {
		delay = playback.Tick
	}
	return &Controller{delay: delay, resultDelay: resultDelay}
}

// Reset 新的一局开始
func (c *Controller) Reset(sessionID string) {
	c.session = sessionID
	c.pending = false
	c.shown = false
}

// Reconcile 用快照整体替换会话状态并解锁输入。winner 非空时覆盖快照里的
// winner；分出胜负时返回延迟展示结果的命令
func (c *Controller) Reconcile(s *session.Session, snap *protocol.Snapshot, winner *int) (Affordances, tea.Cmd) {
	if s.ID() != c.session {
		c.Reset(s.ID())
	}

	committed := *snap
	if winner != nil {
		committed.Winner = winner
	}
	s.Apply(&committed)
	s.Unlock()

	a := Derive(s.Turn())
	logger.WithFields(map[string]any{
		"session": s.ID(),
		"current": committed.CurrentPlayer,
		"play":    a.Play,
		"pass":    a.Pass,
	}).Debug("reconciled")

	if committed.Winner == nil || c.pending || c.shown {
		return a, nil
	}
	c.pending = true
	return a, c.delay(c.resultDelay, ResultMsg{SessionID: s.ID(), Winner: *committed.Winner})
}

// Accept 结果消息属于当前会话且尚未展示时返回 true
func (c *Controller) Accept(msg ResultMsg) bool {
	if msg.SessionID != c.session || !c.pending || c.shown {
		return false
	}
	c.pending = false
	c.shown = true
	return true
}

// Shown 本局结果是否已展示
func (c *Controller) Shown() bool { return c.shown }
