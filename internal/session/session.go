// Package session holds the client-side state of one game: the last
// authoritative snapshot from the server plus the local selection and
// input lock.
package session

import (
	"slices"

	"github.com/google/uuid"

	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/protocol"
)

// Turn 回合信息
type Turn struct {
	CurrentPlayer int
	IsFree        bool // 当前玩家可以自由出牌
	FirstTurn     bool // 全局第一手，必须包含方块3
	Winner        *int
}

// HasWinner 是否已分出胜负
func (t Turn) HasWinner() bool { return t.Winner != nil }

// IsHumanTurn 是否轮到人类玩家且未结束
func (t Turn) IsHumanTurn() bool {
	return !t.HasWinner() && t.CurrentPlayer == protocol.HumanSeat
}

// Session 一局游戏的客户端状态
type Session struct {
	id     string
	gameID string

	hand      card.Hand
	selection map[int]struct{}
	turn      Turn
	counts    [protocol.SeatCount]int

	lastPlay   []card.Card // 桌面上需要压过的牌
	lastPlayer int

	dealt bool
	busy  bool
}

// New 创建空会话，每个会话有唯一 ID，用于丢弃过期的定时回调
func New() *Session {
	return &Session{
		id:         uuid.NewString(),
		selection:  make(map[int]struct{}),
		turn:       Turn{CurrentPlayer: -1},
		lastPlayer: -1,
	}
}

// ID 返回会话 ID
func (s *Session) ID() string { return s.id }

// GameID 返回服务端分配的对局 ID
func (s *Session) GameID() string { return s.gameID }

// Dealt 是否已收到发牌
func (s *Session) Dealt() bool { return s.dealt }

// Hand 返回手牌副本
func (s *Session) Hand() card.Hand { return slices.Clone(s.hand) }

// HandSize 手牌张数
func (s *Session) HandSize() int { return len(s.hand) }

// Turn 返回回合信息
func (s *Session) Turn() Turn { return s.turn }

// Counts 返回四个座位的剩余张数
func (s *Session) Counts() [protocol.SeatCount]int { return s.counts }

// LastPlay 返回桌面上最近一手牌及出牌座位，没有时 ok 为 false
func (s *Session) LastPlay() (cards []card.Card, seat int, ok bool) {
	if len(s.lastPlay) == 0 {
		return nil, -1, false
	}
	return slices.Clone(s.lastPlay), s.lastPlayer, true
}

// SetCounts 用权威计数覆盖全部座位
func (s *Session) SetCounts(counts []int) {
	for i := 0; i < protocol.SeatCount && i < len(counts); i++ {
		s.counts[i] = counts[i]
	}
}

// SetCount 覆盖单个座位的计数
func (s *Session) SetCount(seat, n int) {
	if seat >= 0 && seat < protocol.SeatCount {
		s.counts[seat] = n
	}
}

// --- 输入锁 ---

// Locked 是否有请求或动画未完成
func (s *Session) Locked() bool { return s.busy }

// Lock 加锁，已加锁时返回 false
func (s *Session) Lock() bool {
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// Unlock 解锁
func (s *Session) Unlock() { s.busy = false }

// --- 快照 ---

// ReplaceHand 替换手牌并清空选择
func (s *Session) ReplaceHand(hand []card.Card) {
	s.hand = slices.Clone(hand)
	s.ClearSelection()
}

// Apply 用快照整体替换手牌、回合和计数，并清空选择
func (s *Session) Apply(snap *protocol.Snapshot) {
	if snap.GameID != "" {
		s.gameID = snap.GameID
	}
	s.ReplaceHand(snap.Hand)
	s.turn = Turn{
		CurrentPlayer: snap.CurrentPlayer,
		IsFree:        snap.IsFree,
		FirstTurn:     snap.FirstTurn,
		Winner:        snap.Winner,
	}
	s.SetCounts(snap.OtherCounts)
	s.lastPlay, s.lastPlayer = nil, -1
	if snap.LastPlayPlayer != nil && len(snap.LastPlay) > 0 {
		s.lastPlay = slices.Clone(snap.LastPlay)
		s.lastPlayer = *snap.LastPlayPlayer
	}
	s.dealt = true
}
