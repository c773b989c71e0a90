//go:build !production

package testutil

import (
	"strings"

	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/protocol"
)

// Hand 按 "suit:rank" 构造手牌，例如 Hand("diamond:3", "spade:A")
func Hand(specs ...string) []card.Card {
	out := make([]card.Card, 0, len(specs))
	for _, s := range specs {
		if suit, rank, ok := strings.Cut(s, ":"); ok {
			out = append(out, card.New(card.Suit(suit), card.Rank(rank)))
		}
	}
	return out
}

// Snapshot 一个合法的快照
func Snapshot(current int, hand []card.Card) protocol.Snapshot {
	return protocol.Snapshot{
		GameID:        "g1",
		Hand:          hand,
		CurrentPlayer: current,
		IsFree:        true,
		FirstTurn:     true,
		OtherCounts:   []int{len(hand), 13, 13, 13},
	}
}

// NewGame new_game 响应
func NewGame(current int, hand []card.Card, ai ...protocol.ActionRecord) *protocol.NewGameResponse {
	return &protocol.NewGameResponse{Snapshot: Snapshot(current, hand), AIActions: ai}
}

// Turn play / pass_turn 响应
func Turn(human protocol.ActionRecord, state protocol.Snapshot, ai ...protocol.ActionRecord) *protocol.TurnResponse {
	return &protocol.TurnResponse{PlayerAction: &human, State: &state, AIActions: ai}
}

// PassBy 某座位不出
func PassBy(seat int) protocol.ActionRecord {
	return protocol.ActionRecord{Player: seat, Action: protocol.ActionPass, Cards: []card.Card{}}
}

// PlayBy 某座位出牌
func PlayBy(seat int, ht card.HandType, cards ...card.Card) protocol.ActionRecord {
	return protocol.ActionRecord{Player: seat, Action: protocol.ActionPlay, Cards: cards, HandType: ht}
}
