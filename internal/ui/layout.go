package ui

import (
	"github.com/palemoky/chudadi/internal/gesture"
)

// button 可点击的按钮
type button int

const (
	btnNone button = iota
	btnPlay
	btnPass
	btnNew
)

// span 屏幕上的列区间 [x0, x1)
type span struct{ x0, x1 int }

func (s span) contains(x int) bool { return x >= s.x0 && x < s.x1 }

// layout 记录上一帧手牌和按钮的位置，用于把鼠标坐标映射回下标
type layout struct {
	handTop   int // 选中标记所在行，牌在下一行
	cells     []span
	buttonRow int
	buttons   []buttonSpan
}

type buttonSpan struct {
	b button
	span
}

// cardCells 第 i 张牌占的列
func cardCells(n int) []span {
	cells := make([]span, n)
	for i := range cells {
		x0 := indent + i*(cardWidth+cardGap)
		cells[i] = span{x0: x0, x1: x0 + cardWidth}
	}
	return cells
}

// HitTest 实现 gesture.HitTester，标记行和牌面行都算命中
func (l *layout) HitTest(x, y int) int {
	if len(l.cells) == 0 || y < l.handTop || y > l.handTop+1 {
		return gesture.NoItem
	}
	for i, c := range l.cells {
		if c.contains(x) {
			return i
		}
	}
	return gesture.NoItem
}

// ButtonAt 返回坐标处的按钮
func (l *layout) ButtonAt(x, y int) button {
	if y != l.buttonRow {
		return btnNone
	}
	for _, b := range l.buttons {
		if b.contains(x) {
			return b.b
		}
	}
	return btnNone
}
