// Package gesture turns a continuous pointer drag across a row of cards
// into a batch toggle of the cards it passed over.
//
// The recognizer is a two-state machine (idle -> dragging -> idle). Mouse
// and touch input both reach it through Start/Move/End; the first
// modality to start a drag owns it until End.
package gesture

// NoItem 表示指针不在任何可选项上
const NoItem = -1

// MinBatch 拖过至少这么多张牌才按批量切换处理
const MinBatch = 2

// Modality 输入方式
type Modality int

const (
	Mouse Modality = iota
	Touch
)

func (m Modality) String() string {
	if m == Touch {
		return "touch"
	}
	return "mouse"
}

// State 识别器状态
type State int

const (
	Idle State = iota
	Dragging
)

// Highlighter 接收临时高亮变化，实现方负责渲染
type Highlighter interface {
	Highlight(index int)
	ClearHighlights()
}

// Recognizer 多选拖动识别器
type Recognizer struct {
	state    State
	modality Modality
	last     int
	touched  []int
	seen     map[int]bool
	hl       Highlighter
}

// New 创建识别器，hl 可以为 nil
func New(hl Highlighter) *Recognizer {
	return &Recognizer{
		last: NoItem,
		seen: make(map[int]bool),
		hl:   hl,
	}
}

// State 返回当前状态
func (r *Recognizer) State() State { return r.state }

// Active 是否处于拖动中
func (r *Recognizer) Active() bool { return r.state == Dragging }

// Modality 返回当前拖动的输入方式
func (r *Recognizer) Modality() Modality { return r.modality }

// Touched 返回本次拖动经过的下标，按首次经过的顺序
func (r *Recognizer) Touched() []int {
	return append([]int(nil), r.touched...)
}

// IsTouched 是否在本次拖动中经过了该下标
func (r *Recognizer) IsTouched(index int) bool { return r.seen[index] }

// Start 开始拖动。加锁、起点不在牌上或已有拖动时忽略，返回是否开始
func (r *Recognizer) Start(m Modality, index int, locked bool) bool {
	if r.state == Dragging || locked || index == NoItem {
		return false
	}
	r.state = Dragging
	r.modality = m
	r.reset()
	r.touch(index)
	return true
}

// Move 指针移动到 index，与上次不同时记入经过集合
func (r *Recognizer) Move(m Modality, index int) {
	if r.state != Dragging || m != r.modality {
		return
	}
	if index == NoItem || index == r.last {
		return
	}
	r.touch(index)
}

// End 结束拖动并清除高亮。经过至少 MinBatch 张牌时返回需要切换的下标，
// 否则返回 nil（单击由各自的点击处理）
func (r *Recognizer) End(m Modality) []int {
	if r.state != Dragging || m != r.modality {
		return nil
	}
	r.state = Idle
	if r.hl != nil {
		r.hl.ClearHighlights()
	}
	var toggled []int
	if len(r.touched) >= MinBatch {
		toggled = r.Touched()
	}
	r.reset()
	return toggled
}

// Cancel 放弃当前拖动，不产生切换
func (r *Recognizer) Cancel() {
	if r.state != Dragging {
		return
	}
	r.state = Idle
	if r.hl != nil {
		r.hl.ClearHighlights()
	}
	r.reset()
}

func (r *Recognizer) touch(index int) {
	r.last = index
	if !r.seen[index] {
		r.seen[index] = true
		r.touched = append(r.touched, index)
	}
	if r.hl != nil {
		r.hl.Highlight(index)
	}
}

func (r *Recognizer) reset() {
	r.last = NoItem
	r.touched = r.touched[:0]
	clear(r.seen)
}
