package playback

import (
	"github.com/palemoky/chudadi/internal/protocol"
)

// SeatNames 座位显示名
var SeatNames = [protocol.SeatCount]string{"你", "电脑B", "电脑C", "电脑D"}

// SeatName 返回座位显示名
func SeatName(seat int) string {
	if seat < 0 || seat >= len(SeatNames) {
		return "?"
	}
	return SeatNames[seat]
}

// Describe 生成动作的提示文字
func Describe(a protocol.ActionRecord) string {
	name := SeatName(a.Player)
	if a.IsPass() {
		return name + " 不出"
	}
	if a.HandType.IsSingle() {
		if len(a.Cards) == 1 {
			return name + " 出了 " + a.Cards[0].Label()
		}
		return name + " 出牌"
	}
	if a.HandType.IsBomb() {
		return name + " 出了" + a.HandType.Name() + " !"
	}
	return name + " 出了" + a.HandType.Name()
}
