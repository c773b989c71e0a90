package card

// HandType 服务端给出的牌型分类，仅用于展示
type HandType string

const (
	TypeSingle           HandType = "single"
	TypePair             HandType = "pair"
	TypeTriple           HandType = "triple"
	TypeTripleTwo        HandType = "triple_two"
	TypeStraight         HandType = "straight"
	TypeConsecutivePairs HandType = "consecutive_pairs"
	TypeBomb             HandType = "bomb"
	TypeAirplane         HandType = "airplane"
	TypeAirplanePure     HandType = "airplane_pure"
)

var handTypeNames = map[HandType]string{
	TypeSingle:           "单张",
	TypePair:             "对子",
	TypeTriple:           "三条",
	TypeTripleTwo:        "三带二",
	TypeStraight:         "顺子",
	TypeConsecutivePairs: "连对",
	TypeBomb:             "炸弹",
	TypeAirplane:         "飞机",
	TypeAirplanePure:     "飞机",
}

// Name 返回牌型中文名，未知牌型返回 "出牌"
func (t HandType) Name() string {
	if name, ok := handTypeNames[t]; ok {
		return name
	}
	return "出牌"
}

// IsBomb 判断是否为炸弹
func (t HandType) IsBomb() bool { return t == TypeBomb }

// IsSingle 空牌型和单张按单张处理
func (t HandType) IsSingle() bool { return t == "" || t == TypeSingle }
