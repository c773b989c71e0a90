package session

import (
	"slices"

	"github.com/palemoky/chudadi/internal/card"
)

// IsSelected 判断下标是否已选中
func (s *Session) IsSelected(i int) bool {
	_, ok := s.selection[i]
	return ok
}

// Toggle 切换单张牌的选中状态，加锁或越界时不变
func (s *Session) Toggle(i int) bool {
	if s.busy || i < 0 || i >= len(s.hand) {
		return false
	}
	s.toggle(i)
	return true
}

// ToggleMany 批量切换，每个下标只切换一次
func (s *Session) ToggleMany(indices []int) bool {
	if s.busy {
		return false
	}
	seen := make(map[int]bool, len(indices))
	changed := false
	for _, i := range indices {
		if seen[i] || i < 0 || i >= len(s.hand) {
			continue
		}
		seen[i] = true
		s.toggle(i)
		changed = true
	}
	return changed
}

func (s *Session) toggle(i int) {
	if _, ok := s.selection[i]; ok {
		delete(s.selection, i)
		return
	}
	s.selection[i] = struct{}{}
}

// ClearSelection 清空选择，加锁时也可以清空
func (s *Session) ClearSelection() {
	clear(s.selection)
}

// Selection 返回升序排列的已选下标
func (s *Session) Selection() []int {
	indices := make([]int, 0, len(s.selection))
	for i := range s.selection {
		indices = append(indices, i)
	}
	slices.Sort(indices)
	return indices
}

// SelectionSize 已选张数
func (s *Session) SelectionSize() int { return len(s.selection) }

// SelectedCards 按手牌顺序返回已选的牌
func (s *Session) SelectedCards() []card.Card {
	return s.hand.Pick(s.Selection())
}
