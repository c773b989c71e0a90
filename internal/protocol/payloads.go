package protocol

import "github.com/palemoky/chudadi/internal/card"

// 座位
const (
	SeatCount = 4 // 四人局
	HumanSeat = 0 // 0 号座位是人类玩家
)

// Action 动作类型
type Action string

const (
	ActionPlay Action = "play"
	ActionPass Action = "pass"
)

// --- 客户端请求 Payloads ---

// PlayRequest 出牌请求
type PlayRequest struct {
	GameID string      `json:"game_id"`
	Cards  []card.Card `json:"cards"`
}

// PassRequest 不出请求
type PassRequest struct {
	GameID string `json:"game_id"`
}

// --- 服务端响应 Payloads ---

// ActionRecord 一次出牌或不出，只由服务端产生
type ActionRecord struct {
	Player      int           `json:"player"`
	Action      Action        `json:"action"`
	Cards       []card.Card   `json:"cards"`
	HandType    card.HandType `json:"hand_type,omitempty"`
	OtherCounts []int         `json:"other_counts,omitempty"` // 出牌后四个座位的剩余张数
}

// IsPass 是否为不出
func (a ActionRecord) IsPass() bool { return a.Action == ActionPass }

// Snapshot 服务端权威状态
type Snapshot struct {
	GameID         string      `json:"game_id,omitempty"`
	Hand           []card.Card `json:"hand"`
	CurrentPlayer  int         `json:"current_player"`
	IsFree         bool        `json:"is_free"`
	FirstTurn      bool        `json:"first_turn"`
	OtherCounts    []int       `json:"other_counts"`
	Winner         *int        `json:"winner"`
	LastPlay       []card.Card `json:"last_play,omitempty"`
	LastPlayPlayer *int        `json:"last_play_player,omitempty"`
}

// HasWinner 是否已分出胜负
func (s *Snapshot) HasWinner() bool { return s.Winner != nil }

// NewGameResponse new_game 响应：首个快照，外加人类之前电脑的出牌
type NewGameResponse struct {
	Snapshot
	AIActions []ActionRecord `json:"ai_actions,omitempty"`
}

// TurnResponse play / pass_turn 响应
type TurnResponse struct {
	Error        string         `json:"error,omitempty"`
	PlayerAction *ActionRecord  `json:"player_action,omitempty"`
	State        *Snapshot      `json:"state,omitempty"`
	AIActions    []ActionRecord `json:"ai_actions,omitempty"`
	Winner       *int           `json:"winner,omitempty"`
}

// FinalWinner 顶层 winner 优先，其次是快照中的 winner
func (r *TurnResponse) FinalWinner() *int {
	if r.Winner != nil {
		return r.Winner
	}
	if r.State != nil {
		return r.State.Winner
	}
	return nil
}

// Seat 返回整数指针，便于构造 winner 字段
func Seat(i int) *int { return &i }
