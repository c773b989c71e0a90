package sound

// Cue 音效
type Cue string

const (
	CueDeal Cue = "deal" // 发牌
	CuePlay Cue = "play" // 出牌
	CuePass Cue = "pass" // 不出
	CueBomb Cue = "bomb" // 炸弹
	CueTurn Cue = "turn" // 轮到自己
	CueWin  Cue = "win"  // 胜利
	CueLose Cue = "lose" // 失败
)

// Cues 全部音效
var Cues = []Cue{CueDeal, CuePlay, CuePass, CueBomb, CueTurn, CueWin, CueLose}

// Player 播放音效
type Player interface {
	Play(c Cue)
}

// 没有音频文件时合成的提示音（Hz）
var fallbackTones = map[Cue][]float64{
	CueDeal: {523},
	CuePlay: {659},
	CuePass: {392},
	CueBomb: {196, 147},
	CueTurn: {784, 988},
	CueWin:  {523, 659, 784},
	CueLose: {392, 330, 262},
}

// Muter 可以开关静音的播放器
type Muter interface {
	SetMute(mute bool)
	Muted() bool
}
