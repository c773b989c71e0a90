package gesture

// Phase 指针事件阶段
type Phase int

const (
	Press Phase = iota
	Motion
	Release
)

// PointerEvent 统一后的指针事件，屏幕坐标
type PointerEvent struct {
	Modality Modality
	Phase    Phase
	X, Y     int
}

// HitTester 把屏幕坐标映射到牌的下标，不在牌上时返回 NoItem
type HitTester interface {
	HitTest(x, y int) int
}

// HitTestFunc 函数适配器
type HitTestFunc func(x, y int) int

func (f HitTestFunc) HitTest(x, y int) int { return f(x, y) }

// Result 一次事件处理的结果
type Result struct {
	Toggled []int // 拖动结束时需要批量切换的下标
	Click   int   // 单击的下标，没有时为 NoItem
}

// Tracker 把原始指针事件喂给 Recognizer，同时识别单击
type Tracker struct {
	r       *Recognizer
	hit     HitTester
	pressed int
	owner   Modality
	down    bool
}

// NewTracker 创建指针跟踪器
func NewTracker(r *Recognizer, hit HitTester) *Tracker {
	return &Tracker{r: r, hit: hit, pressed: NoItem}
}

// Recognizer 返回底层识别器
func (t *Tracker) Recognizer() *Recognizer { return t.r }

// Handle 处理一个指针事件。locked 为 true 时不开始拖动，也不产生单击
func (t *Tracker) Handle(ev PointerEvent, locked bool) Result {
	res := Result{Click: NoItem}
	switch ev.Phase {
	case Press:
		if t.down {
			// 另一种输入方式已经按下，先到先得
			return res
		}
		t.down = true
		t.owner = ev.Modality
		t.pressed = t.hit.HitTest(ev.X, ev.Y)
		t.r.Start(ev.Modality, t.pressed, locked)
		if locked {
			// 加锁时按下的，解锁后松开也不算单击
			t.pressed = NoItem
		}

	case Motion:
		if !t.down || ev.Modality != t.owner {
			return res
		}
		t.r.Move(ev.Modality, t.hit.HitTest(ev.X, ev.Y))

	case Release:
		if !t.down || ev.Modality != t.owner {
			return res
		}
		t.down = false
		res.Toggled = t.r.End(ev.Modality)
		at := t.hit.HitTest(ev.X, ev.Y)
		if len(res.Toggled) == 0 && !locked && at != NoItem && at == t.pressed {
			res.Click = at
		}
		t.pressed = NoItem
	}
	return res
}

// Reset 放弃进行中的交互
func (t *Tracker) Reset() {
	t.r.Cancel()
	t.down = false
	t.pressed = NoItem
}
