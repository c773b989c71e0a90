package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/chudadi/internal/apperrors"
	"github.com/palemoky/chudadi/internal/logger"
	"github.com/palemoky/chudadi/internal/playback"
	"github.com/palemoky/chudadi/internal/protocol"
	"github.com/palemoky/chudadi/internal/reconcile"
	"github.com/palemoky/chudadi/internal/session"
	"github.com/palemoky/chudadi/internal/sound"
)

// 提示语
const (
	msgLeadWithDiamond3 = "你有方块3，请出牌"
	msgYourTurn         = "轮到你出牌"
	msgHumanWins        = "恭喜你赢了!"
)

// startGame 丢弃当前会话并请求发牌。旧会话的定时消息和迟到的响应都会因为
// 会话 ID 不匹配而被丢弃
func (m *Model) startGame() tea.Cmd {
	m.scheduler.Cancel()
	m.tracker.Reset()
	m.ClearHighlights()

	m.sess = session.New()
	m.reconciler.Reset(m.sess.ID())
	m.phase = PhasePlaying
	m.aff = reconcile.Affordances{ActiveSeat: reconcile.NoSeat}
	m.active = reconcile.NoSeat
	m.zones = [protocol.SeatCount]zone{}
	m.result = nil
	m.cursor = 0
	m.setMessage("")

	m.sess.Lock()
	logger.WithField("session", m.sess.ID()).Info("开始新局")

	ctx, id, tr := m.ctx, m.sess.ID(), m.transport
	return tea.Batch(m.beginRequest(), func() tea.Msg {
		resp, err := tr.NewGame(ctx)
		return NewGameResultMsg{SessionID: id, Resp: resp, Err: err}
	})
}

// play 提交选中的牌。加锁或没选牌时什么都不做
func (m *Model) play() tea.Cmd {
	if !m.CanPlay() || m.sess.SelectionSize() == 0 {
		return nil
	}
	m.sess.Lock()
	cards := m.sess.SelectedCards()

	ctx, id, gameID, tr := m.ctx, m.sess.ID(), m.sess.GameID(), m.transport
	return tea.Batch(m.beginRequest(), func() tea.Msg {
		resp, err := tr.Play(ctx, gameID, cards)
		return TurnResultMsg{SessionID: id, Resp: resp, Err: err}
	})
}

// pass 不出
func (m *Model) pass() tea.Cmd {
	if !m.CanPass() {
		return nil
	}
	m.sess.Lock()

	ctx, id, gameID, tr := m.ctx, m.sess.ID(), m.sess.GameID(), m.transport
	return tea.Batch(m.beginRequest(), func() tea.Msg {
		resp, err := tr.Pass(ctx, gameID)
		return TurnResultMsg{SessionID: id, Resp: resp, Err: err}
	})
}

func (m *Model) beginRequest() tea.Cmd {
	m.requesting = true
	return m.delay(m.spinner.Spinner.FPS, busyTickMsg{})
}

// fail 请求失败：解锁并提示，状态不变
func (m *Model) fail(err error) tea.Cmd {
	logger.WithField("kind", apperrors.KindOf(err)).Warnf("请求失败: %v", err)
	if apperrors.KindOf(err) == apperrors.KindRejected {
		m.sess.ClearSelection()
	}
	m.sess.Unlock()
	return m.setMessage(apperrors.UserMessage(err))
}

func (m *Model) handleNewGame(msg NewGameResultMsg) tea.Cmd {
	if msg.SessionID != m.sess.ID() {
		return nil
	}
	m.requesting = false
	if msg.Err != nil {
		return m.fail(msg.Err)
	}

	resp := msg.Resp
	// 先亮出手牌，电脑的动作播完后再整体同步
	m.sess.Apply(&resp.Snapshot)
	m.sound.Play(sound.CueDeal)

	finish := func() tea.Cmd {
		cmd := m.commit(&resp.Snapshot, nil)
		if m.aff.Play {
			return tea.Batch(cmd, m.setMessage(msgYourTurn))
		}
		return cmd
	}

	if len(resp.AIActions) == 0 {
		cmd := m.commit(&resp.Snapshot, nil)
		if m.aff.Play {
			return tea.Batch(cmd, m.setMessage(msgLeadWithDiamond3))
		}
		return cmd
	}
	return m.scheduler.Schedule(playback.Plan{
		SessionID: m.sess.ID(),
		Actions:   resp.AIActions,
		Base:      m.cfg.Timing.DealDelayDuration(),
		Finish:    finish,
	})
}

func (m *Model) handleTurn(msg TurnResultMsg) tea.Cmd {
	if msg.SessionID != m.sess.ID() {
		return nil
	}
	m.requesting = false
	if msg.Err != nil {
		return m.fail(msg.Err)
	}

	resp := msg.Resp
	m.sess.ClearSelection()
	m.zones = [protocol.SeatCount]zone{}

	if pa := resp.PlayerAction; pa != nil {
		m.zones[protocol.HumanSeat] = zone{shown: true, pass: pa.IsPass(), cards: pa.Cards}
		m.sound.Play(cueFor(*pa))
	}
	// 自己的牌和张数立即更新，其它座位等回放
	m.sess.ReplaceHand(resp.State.Hand)
	m.sess.SetCount(protocol.HumanSeat, resp.State.OtherCounts[protocol.HumanSeat])
	m.clampCursor()

	if len(resp.AIActions) == 0 {
		return m.commit(resp.State, resp.Winner)
	}
	return m.scheduler.Schedule(playback.Plan{
		SessionID: m.sess.ID(),
		Actions:   resp.AIActions,
		Base:      m.cfg.Timing.MoveDelayDuration(),
		Finish: func() tea.Cmd {
			return m.commit(resp.State, resp.Winner)
		},
	})
}

// commit 同步权威状态并解锁
func (m *Model) commit(snap *protocol.Snapshot, winner *int) tea.Cmd {
	aff, cmd := m.reconciler.Reconcile(m.sess, snap, winner)
	m.aff = aff
	m.active = aff.ActiveSeat
	m.clampCursor()
	if aff.Play {
		m.sound.Play(sound.CueTurn)
	}
	return cmd
}

func (m *Model) handleResult(msg reconcile.ResultMsg) tea.Cmd {
	if !m.reconciler.Accept(msg) {
		return nil
	}
	m.result = &msg
	if msg.HumanWon() {
		m.sound.Play(sound.CueWin)
	} else {
		m.sound.Play(sound.CueLose)
	}
	return nil
}

// ApplyStep 实现 playback.Stage：画出一个电脑动作
func (m *Model) ApplyStep(_ int, a protocol.ActionRecord) tea.Cmd {
	m.zones[a.Player] = zone{shown: true, pass: a.IsPass(), cards: a.Cards}
	if a.OtherCounts != nil {
		m.sess.SetCounts(a.OtherCounts)
	}
	m.active = a.Player
	m.sound.Play(cueFor(a))
	return m.setMessage(playback.Describe(a))
}

func cueFor(a protocol.ActionRecord) sound.Cue {
	switch {
	case a.IsPass():
		return sound.CuePass
	case a.HandType.IsBomb():
		return sound.CueBomb
	default:
		return sound.CuePlay
	}
}

// resultText 结束画面文字
func resultText(r *reconcile.ResultMsg) string {
	if r.HumanWon() {
		return msgHumanWins
	}
	return playback.SeatName(r.Winner) + " 赢了"
}
