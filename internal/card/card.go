package card

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit 花色，取值与服务端线上格式一致
type Suit string

// Rank 点数显示标签，如 "3".."10","J","Q","K","A","2"
type Rank string

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Diamond Suit = "diamond" // 方块
	Club    Suit = "club"    // 梅花
	Heart   Suit = "heart"   // 红心
	Spade   Suit = "spade"   // 黑桃
	Joker   Suit = "joker"   // 王牌
)

const (
	RankBlackJoker Rank = "B"
	RankRedJoker   Rank = "R"
)

// suitNames 花色中文名
var suitNames = map[Suit]string{
	Diamond: "方块",
	Club:    "梅花",
	Heart:   "红心",
	Spade:   "黑桃",
	Joker:   "",
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Diamond: "♦",
	Club:    "♣",
	Heart:   "♥",
	Spade:   "♠",
	Joker:   "🃏",
}

// Valid 判断是否为已知花色
func (s Suit) Valid() bool {
	_, ok := suitNames[s]
	return ok
}

// Name 返回花色中文名
func (s Suit) Name() string { return suitNames[s] }

func (s Suit) String() string { return suitSymbols[s] }

// Card 一张牌，只由花色和点数确定
type Card struct {
	Suit Suit
	Rank Rank
}

// New 创建一张牌
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Color 红桃、方块和大王为红色
func (c Card) Color() CardColor {
	if c.Suit == Heart || c.Suit == Diamond || c.Rank == RankRedJoker {
		return Red
	}
	return Black
}

// Label 返回中文描述，如 "方块3"
func (c Card) Label() string {
	if c.Suit == Joker {
		if c.Rank == RankRedJoker {
			return "大王"
		}
		return "小王"
	}
	return c.Suit.Name() + string(c.Rank)
}

func (c Card) String() string {
	return c.Suit.String() + string(c.Rank)
}

// MarshalJSON 编码为 [suit, rank]
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(c.Suit), string(c.Rank)})
}

// UnmarshalJSON 解码 [suit, rank]
func (c *Card) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("无法解析牌: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("牌格式错误: 期望 2 个元素，实际 %d 个", len(pair))
	}
	suit := Suit(strings.ToLower(pair[0]))
	if !suit.Valid() {
		return fmt.Errorf("无法识别的花色: %s", pair[0])
	}
	if pair[1] == "" {
		return fmt.Errorf("点数为空")
	}
	c.Suit = suit
	c.Rank = Rank(pair[1])
	return nil
}

// Hand 人类玩家的手牌，顺序即显示顺序
type Hand []Card

// Contains 判断手牌中是否有这张牌
func (h Hand) Contains(c Card) bool {
	for _, x := range h {
		if x == c {
			return true
		}
	}
	return false
}

// Pick 按下标取牌，忽略越界下标
func (h Hand) Pick(indices []int) []Card {
	cards := make([]Card, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(h) {
			cards = append(cards, h[i])
		}
	}
	return cards
}

// Duplicates 返回手牌中重复出现的牌
func (h Hand) Duplicates() []Card {
	seen := make(map[Card]bool, len(h))
	var dup []Card
	for _, c := range h {
		if seen[c] {
			dup = append(dup, c)
			continue
		}
		seen[c] = true
	}
	return dup
}
