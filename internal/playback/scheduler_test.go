package playback

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/protocol"
)

type event struct {
	kind  string
	index int
	seat  int
}

type recorder struct {
	events []event
	waits  []time.Duration
}

func (r *recorder) ApplyStep(index int, a protocol.ActionRecord) tea.Cmd {
	r.events = append(r.events, event{kind: "step", index: index, seat: a.Player})
	return nil
}

func (r *recorder) delay(d time.Duration, msg tea.Msg) tea.Cmd {
	r.waits = append(r.waits, d)
	return func() tea.Msg { return msg }
}

// drain 依次执行命令直到没有后续命令
func drain(s *Scheduler, cmd tea.Cmd) {
	for cmd != nil {
		cmd = s.Update(cmd())
	}
}

func actions(seats ...int) []protocol.ActionRecord {
	out := make([]protocol.ActionRecord, 0, len(seats))
	for _, seat := range seats {
		out = append(out, protocol.ActionRecord{Player: seat, Action: protocol.ActionPass})
	}
	return out
}

func TestScheduler_OrderAndCadence(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := New(rec, time.Second, 500*time.Millisecond, rec.delay)

	finished := 0
	cmd := s.Schedule(Plan{
		SessionID: "s1",
		Actions:   actions(1, 2, 3),
		Base:      700 * time.Millisecond,
		Finish: func() tea.Cmd {
			finished++
			rec.events = append(rec.events, event{kind: "done"})
			return nil
		},
	})
	require.NotNil(t, cmd)
	assert.True(t, s.Running())

	drain(s, cmd)

	assert.Equal(t, []event{
		{kind: "step", index: 0, seat: 1},
		{kind: "step", index: 1, seat: 2},
		{kind: "step", index: 2, seat: 3},
		{kind: "done"},
	}, rec.events)
	assert.Equal(t, []time.Duration{
		700 * time.Millisecond,
		time.Second,
		time.Second,
		1500 * time.Millisecond,
	}, rec.waits)
	assert.Equal(t, 1, finished)
	assert.False(t, s.Running())
}

func TestScheduler_AbsoluteOffsets(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := New(rec, time.Second, 500*time.Millisecond, rec.delay)
	drain(s, s.Schedule(Plan{SessionID: "s", Actions: actions(1, 2), Base: 600 * time.Millisecond}))

	var offsets []time.Duration
	var total time.Duration
	for _, w := range rec.waits {
		total += w
		offsets = append(offsets, total)
	}
	// 600 → 1600 → 最后一步之后再 1000+500
	assert.Equal(t, []time.Duration{600 * time.Millisecond, 1600 * time.Millisecond, 3100 * time.Millisecond}, offsets)
}

func TestScheduler_Empty(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := New(rec, time.Second, 0, rec.delay)
	called := false
	cmd := s.Schedule(Plan{SessionID: "s", Finish: func() tea.Cmd { called = true; return nil }})

	assert.Nil(t, cmd)
	assert.False(t, called, "empty playback leaves reconciliation to the caller")
	assert.False(t, s.Running())
	assert.Empty(t, rec.waits)
}

func TestScheduler_DropsStaleMessages(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := New(rec, time.Second, 0, rec.delay)

	oldFinished := false
	first := s.Schedule(Plan{SessionID: "old", Actions: actions(1, 2), Finish: func() tea.Cmd { oldFinished = true; return nil }})
	staleStep := first()

	newFinished := false
	second := s.Schedule(Plan{SessionID: "new", Actions: actions(3), Finish: func() tea.Cmd { newFinished = true; return nil }})

	assert.Nil(t, s.Update(staleStep), "step from a superseded run is ignored")
	assert.Nil(t, s.Update(DoneMsg{SessionID: "old", Run: 1}))
	assert.Empty(t, rec.events)

	drain(s, second)
	assert.Equal(t, []event{{kind: "step", index: 0, seat: 3}}, rec.events)
	assert.False(t, oldFinished)
	assert.True(t, newFinished)
}

func TestScheduler_Cancel(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := New(rec, time.Second, 0, rec.delay)
	finished := false
	cmd := s.Schedule(Plan{SessionID: "s", Actions: actions(1), Finish: func() tea.Cmd { finished = true; return nil }})
	msg := cmd()

	s.Cancel()
	assert.Nil(t, s.Update(msg))
	assert.Empty(t, rec.events)
	assert.False(t, finished)
	assert.False(t, s.Running())
}

func TestScheduler_IgnoresOutOfOrderAndForeign(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := New(rec, time.Second, 0, rec.delay)
	s.Schedule(Plan{SessionID: "s", Actions: actions(1, 2)})

	assert.Nil(t, s.Update(StepMsg{SessionID: "s", Run: 1, Index: 1}), "index 1 cannot run before index 0")
	assert.Nil(t, s.Update(DoneMsg{SessionID: "s", Run: 1}), "done cannot run before the last step")
	assert.Nil(t, s.Update(tea.KeyMsg{}))
	assert.Empty(t, rec.events)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	d3 := card.New(card.Diamond, "3")
	s5 := card.New(card.Spade, "5")
	h5 := card.New(card.Heart, "5")

	tests := []struct {
		name string
		rec  protocol.ActionRecord
		want string
	}{
		{"pass", protocol.ActionRecord{Player: 1, Action: protocol.ActionPass}, "电脑B 不出"},
		{"single card", protocol.ActionRecord{Player: 2, Action: protocol.ActionPlay, Cards: []card.Card{d3}, HandType: card.TypeSingle}, "电脑C 出了 方块3"},
		{"no type one card", protocol.ActionRecord{Player: 3, Action: protocol.ActionPlay, Cards: []card.Card{s5}}, "电脑D 出了 黑桃5"},
		{"no type many cards", protocol.ActionRecord{Player: 3, Action: protocol.ActionPlay, Cards: []card.Card{s5, h5}}, "电脑D 出牌"},
		{"pair", protocol.ActionRecord{Player: 1, Action: protocol.ActionPlay, Cards: []card.Card{s5, h5}, HandType: card.TypePair}, "电脑B 出了对子"},
		{"airplane", protocol.ActionRecord{Player: 2, Action: protocol.ActionPlay, Cards: []card.Card{s5}, HandType: card.TypeAirplanePure}, "电脑C 出了飞机"},
		{"bomb", protocol.ActionRecord{Player: 3, Action: protocol.ActionPlay, Cards: []card.Card{s5}, HandType: card.TypeBomb}, "电脑D 出了炸弹 !"},
		{"human", protocol.ActionRecord{Player: 0, Action: protocol.ActionPass}, "你 不出"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Describe(tt.rec))
		})
	}
	assert.Equal(t, "?", SeatName(7))
}
