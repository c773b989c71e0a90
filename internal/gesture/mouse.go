package gesture

import tea "github.com/charmbracelet/bubbletea"

// FromMouse 把 bubbletea 鼠标消息转换为指针事件，只关心左键和移动
func FromMouse(msg tea.MouseMsg) (PointerEvent, bool) {
	ev := PointerEvent{Modality: Mouse, X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Phase = Press
	case tea.MouseActionMotion:
		ev.Phase = Motion
	case tea.MouseActionRelease:
		ev.Phase = Release
	default:
		return ev, false
	}
	return ev, true
}

// FromTouch 触摸输入的适配入口，坐标已换算为单元格
func FromTouch(phase Phase, x, y int) PointerEvent {
	return PointerEvent{Modality: Touch, Phase: phase, X: x, Y: y}
}
