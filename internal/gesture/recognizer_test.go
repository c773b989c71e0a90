package gesture

import (
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHighlighter struct {
	lit     []int
	clears  int
	current map[int]bool
}

func newRecordingHighlighter() *recordingHighlighter {
	return &recordingHighlighter{current: make(map[int]bool)}
}

func (h *recordingHighlighter) Highlight(i int) {
	h.lit = append(h.lit, i)
	h.current[i] = true
}

func (h *recordingHighlighter) ClearHighlights() {
	h.clears++
	clear(h.current)
}

func drag(r *Recognizer, path ...int) []int {
	if !r.Start(Mouse, path[0], false) {
		return nil
	}
	for _, i := range path[1:] {
		r.Move(Mouse, i)
	}
	return r.End(Mouse)
}

func TestRecognizer_BatchToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path []int
		want []int
	}{
		{"two cards", []int{3, 4}, []int{3, 4}},
		{"sweep right", []int{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5}},
		{"sweep back over start", []int{2, 3, 4, 3, 2}, []int{2, 3, 4}},
		{"gaps outside the row", []int{0, NoItem, 1, NoItem}, []int{0, 1}},
		{"repeated samples", []int{6, 6, 6, 7, 7}, []int{6, 7}},
		{"single card", []int{5, 5, 5}, nil},
		{"single card with exits", []int{5, NoItem, 5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(nil)
			assert.Equal(t, tt.want, drag(r, tt.path...))
			assert.Equal(t, Idle, r.State())
			assert.Empty(t, r.Touched())
		})
	}
}

func TestRecognizer_StartGuards(t *testing.T) {
	t.Parallel()

	hl := newRecordingHighlighter()
	r := New(hl)

	assert.False(t, r.Start(Mouse, 2, true), "locked input never starts a drag")
	assert.False(t, r.Start(Mouse, NoItem, false), "drag outside the row never starts")
	assert.Equal(t, Idle, r.State())
	assert.Empty(t, hl.lit, "no highlight without a session")

	r.Move(Mouse, 3)
	assert.Nil(t, r.End(Mouse), "move/end without start are no-ops")
	assert.Zero(t, hl.clears)
}

func TestRecognizer_Highlights(t *testing.T) {
	t.Parallel()

	hl := newRecordingHighlighter()
	r := New(hl)

	require.True(t, r.Start(Mouse, 1, false))
	r.Move(Mouse, 2)
	r.Move(Mouse, NoItem)
	r.Move(Mouse, 3)
	assert.Equal(t, []int{1, 2, 3}, hl.lit)
	assert.True(t, hl.current[2])
	assert.True(t, r.IsTouched(2))

	r.End(Mouse)
	assert.Equal(t, 1, hl.clears)
	assert.Empty(t, hl.current)
}

func TestRecognizer_FirstModalityWins(t *testing.T) {
	t.Parallel()

	r := New(nil)
	require.True(t, r.Start(Touch, 0, false))
	assert.False(t, r.Start(Mouse, 4, false), "a second interaction cannot start")

	r.Move(Mouse, 5)
	r.Move(Touch, 1)
	assert.Nil(t, r.End(Mouse), "only the owning modality can end the drag")
	assert.True(t, r.Active())
	assert.Equal(t, Touch, r.Modality())

	assert.Equal(t, []int{0, 1}, r.End(Touch))
}

func TestRecognizer_Cancel(t *testing.T) {
	t.Parallel()

	hl := newRecordingHighlighter()
	r := New(hl)
	r.Start(Mouse, 0, false)
	r.Move(Mouse, 1)
	r.Cancel()

	assert.Equal(t, Idle, r.State())
	assert.Equal(t, 1, hl.clears)
	assert.Nil(t, r.End(Mouse))
}

// 任意经过 >=2 张牌的拖动，结束后恰好这些牌的选中状态取反，其余不变
func TestRecognizer_InvertsExactlyTouched(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	const handSize = 13

	for round := 0; round < 200; round++ {
		before := make([]bool, handSize)
		for i := range before {
			before[i] = rng.IntN(2) == 0
		}

		pathLen := 1 + rng.IntN(20)
		path := []int{rng.IntN(handSize)}
		touched := map[int]bool{path[0]: true}
		for i := 1; i < pathLen; i++ {
			p := rng.IntN(handSize+2) - 1
			if p < 0 || p >= handSize {
				p = NoItem
			} else {
				touched[p] = true
			}
			path = append(path, p)
		}

		after := append([]bool(nil), before...)
		for _, i := range drag(New(nil), path...) {
			after[i] = !after[i]
		}

		for i := 0; i < handSize; i++ {
			if len(touched) >= MinBatch && touched[i] {
				assert.NotEqual(t, before[i], after[i], "round %d index %d should flip", round, i)
			} else {
				assert.Equal(t, before[i], after[i], "round %d index %d should stay", round, i)
			}
		}
	}
}

func TestTracker_ClickAndDrag(t *testing.T) {
	t.Parallel()

	// 每张牌占 4 列，位于第 10 行
	hit := HitTestFunc(func(x, y int) int {
		if y != 10 || x < 0 || x >= 4*5 {
			return NoItem
		}
		return x / 4
	})

	t.Run("plain click", func(t *testing.T) {
		t.Parallel()
		tr := NewTracker(New(nil), hit)
		tr.Handle(PointerEvent{Phase: Press, X: 5, Y: 10}, false)
		res := tr.Handle(PointerEvent{Phase: Release, X: 6, Y: 10}, false)
		assert.Nil(t, res.Toggled)
		assert.Equal(t, 1, res.Click)
	})

	t.Run("drag suppresses click", func(t *testing.T) {
		t.Parallel()
		tr := NewTracker(New(nil), hit)
		tr.Handle(PointerEvent{Phase: Press, X: 1, Y: 10}, false)
		tr.Handle(PointerEvent{Phase: Motion, X: 5, Y: 10}, false)
		tr.Handle(PointerEvent{Phase: Motion, X: 2, Y: 10}, false)
		res := tr.Handle(PointerEvent{Phase: Release, X: 2, Y: 10}, false)
		assert.Equal(t, []int{0, 1}, res.Toggled)
		assert.Equal(t, NoItem, res.Click)
	})

	t.Run("release elsewhere is not a click", func(t *testing.T) {
		t.Parallel()
		tr := NewTracker(New(nil), hit)
		tr.Handle(PointerEvent{Phase: Press, X: 1, Y: 10}, false)
		res := tr.Handle(PointerEvent{Phase: Release, X: 1, Y: 3}, false)
		assert.Equal(t, NoItem, res.Click)
	})

	t.Run("locked", func(t *testing.T) {
		t.Parallel()
		tr := NewTracker(New(nil), hit)
		tr.Handle(PointerEvent{Phase: Press, X: 1, Y: 10}, true)
		tr.Handle(PointerEvent{Phase: Motion, X: 9, Y: 10}, true)
		res := tr.Handle(PointerEvent{Phase: Release, X: 9, Y: 10}, true)
		assert.Nil(t, res.Toggled)
		assert.Equal(t, NoItem, res.Click)
		assert.False(t, tr.Recognizer().Active())
	})

	t.Run("pressed while locked, released after unlock", func(t *testing.T) {
		t.Parallel()
		tr := NewTracker(New(nil), hit)
		tr.Handle(PointerEvent{Phase: Press, X: 9, Y: 10}, true)
		res := tr.Handle(PointerEvent{Phase: Release, X: 9, Y: 10}, false)
		assert.Nil(t, res.Toggled)
		assert.Equal(t, NoItem, res.Click)
	})

	t.Run("second modality ignored", func(t *testing.T) {
		t.Parallel()
		tr := NewTracker(New(nil), hit)
		tr.Handle(FromTouch(Press, 1, 10), false)
		tr.Handle(PointerEvent{Modality: Mouse, Phase: Press, X: 13, Y: 10}, false)
		tr.Handle(PointerEvent{Modality: Mouse, Phase: Motion, X: 17, Y: 10}, false)
		assert.Nil(t, tr.Handle(PointerEvent{Modality: Mouse, Phase: Release, X: 17, Y: 10}, false).Toggled)
		tr.Handle(FromTouch(Motion, 5, 10), false)
		res := tr.Handle(FromTouch(Release, 5, 10), false)
		assert.Equal(t, []int{0, 1}, res.Toggled)
	})
}

func TestFromMouse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		msg   tea.MouseMsg
		phase Phase
		ok    bool
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, Press, true},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, Press, false},
		{"motion", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, Motion, true},
		{"release", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease}, Release, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, ok := FromMouse(tt.msg)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.phase, ev.Phase)
				assert.Equal(t, Mouse, ev.Modality)
				assert.Equal(t, tt.msg.X, ev.X)
				assert.Equal(t, tt.msg.Y, ev.Y)
			}
		})
	}
}
