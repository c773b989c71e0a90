package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/protocol"
)

func testHand() []card.Card {
	return []card.Card{
		card.New(card.Diamond, "3"),
		card.New(card.Club, "5"),
		card.New(card.Heart, "5"),
		card.New(card.Spade, "J"),
		card.New(card.Heart, "2"),
	}
}

func dealt(t *testing.T) *Session {
	t.Helper()
	s := New()
	s.Apply(&protocol.Snapshot{
		GameID:        "g1",
		Hand:          testHand(),
		CurrentPlayer: 0,
		IsFree:        true,
		FirstTurn:     true,
		OtherCounts:   []int{5, 13, 13, 13},
	})
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID(), "each session gets its own id")
	assert.False(t, a.Dealt())
	assert.False(t, a.Locked())
	assert.Empty(t, a.Hand())
	assert.Equal(t, -1, a.Turn().CurrentPlayer)
}

func TestSession_Apply(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	require.True(t, s.Toggle(1))

	winner := 2
	s.Apply(&protocol.Snapshot{
		Hand:          testHand()[:3],
		CurrentPlayer: 2,
		OtherCounts:   []int{3, 9, 0, 4},
		Winner:        &winner,
	})

	assert.Equal(t, "g1", s.GameID(), "empty game id keeps the previous one")
	assert.Len(t, s.Hand(), 3)
	assert.Zero(t, s.SelectionSize(), "selection cleared on new hand")
	assert.Equal(t, [4]int{3, 9, 0, 4}, s.Counts())
	assert.True(t, s.Turn().HasWinner())
	assert.False(t, s.Turn().IsHumanTurn())
}

func TestSession_LastPlay(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	_, _, ok := s.LastPlay()
	assert.False(t, ok)

	played := []card.Card{card.New(card.Diamond, "9"), card.New(card.Club, "9")}
	s.Apply(&protocol.Snapshot{
		Hand:           testHand(),
		CurrentPlayer:  0,
		OtherCounts:    []int{5, 11, 13, 13},
		LastPlay:       played,
		LastPlayPlayer: protocol.Seat(1),
	})
	cards, seat, ok := s.LastPlay()
	require.True(t, ok)
	assert.Equal(t, 1, seat)
	assert.Equal(t, played, cards)

	// 新一轮自由出牌，桌面清空
	s.Apply(&protocol.Snapshot{Hand: testHand(), IsFree: true, OtherCounts: []int{5, 11, 13, 13}})
	_, _, ok = s.LastPlay()
	assert.False(t, ok)
}

func TestSession_Hand_IsCopy(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	h := s.Hand()
	h[0] = card.New(card.Spade, "A")
	assert.Equal(t, card.New(card.Diamond, "3"), s.Hand()[0])
}

func TestSession_Lock(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	assert.True(t, s.Lock())
	assert.False(t, s.Lock(), "second lock must fail while a request is outstanding")
	assert.True(t, s.Locked())
	s.Unlock()
	assert.False(t, s.Locked())
}

func TestSession_Toggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		locked   bool
		index    int
		changed  bool
		selected bool
	}{
		{"select first", false, 0, true, true},
		{"select last", false, 4, true, true},
		{"out of range", false, 5, false, false},
		{"negative", false, -1, false, false},
		{"locked", true, 2, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := dealt(t)
			if tt.locked {
				s.Lock()
			}
			assert.Equal(t, tt.changed, s.Toggle(tt.index))
			assert.Equal(t, tt.selected, s.IsSelected(tt.index))
		})
	}
}

func TestSession_Toggle_Twice(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	s.Toggle(3)
	s.Toggle(3)
	assert.False(t, s.IsSelected(3))
}

func TestSession_ToggleMany(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	s.Toggle(1)

	assert.True(t, s.ToggleMany([]int{0, 1, 2, 2, 9}))
	assert.Equal(t, []int{0, 2}, s.Selection())
	assert.Equal(t, []card.Card{card.New(card.Diamond, "3"), card.New(card.Heart, "5")}, s.SelectedCards())

	s.Lock()
	assert.False(t, s.ToggleMany([]int{3, 4}))
	assert.Equal(t, []int{0, 2}, s.Selection())
}

func TestSession_ClearSelection_WhileLocked(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	s.Toggle(0)
	s.Lock()
	s.ClearSelection()
	assert.Zero(t, s.SelectionSize())
}

func TestSession_Counts(t *testing.T) {
	t.Parallel()

	s := dealt(t)
	s.SetCount(2, 7)
	s.SetCount(4, 1)
	assert.Equal(t, [4]int{5, 13, 7, 13}, s.Counts())

	s.SetCounts([]int{1, 2, 3, 4})
	assert.Equal(t, [4]int{1, 2, 3, 4}, s.Counts())
}
