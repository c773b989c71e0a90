package ui

import (
	"github.com/palemoky/chudadi/internal/protocol"
	"github.com/palemoky/chudadi/internal/theme"
)

// --- Tea Messages ---

// NewGameResultMsg new_game 请求结束
type NewGameResultMsg struct {
	SessionID string
	Resp      *protocol.NewGameResponse
	Err       error
}

// TurnResultMsg play / pass_turn 请求结束
type TurnResultMsg struct {
	SessionID string
	Resp      *protocol.TurnResponse
	Err       error
}

// ClearMessageMsg 清除提示，只清除同一条
type ClearMessageMsg struct {
	Seq int
}

// busyTickMsg 推动请求中的转圈动画
type busyTickMsg struct{}

// themeLoadedMsg 启动时读到的主题
type themeLoadedMsg struct {
	Mode theme.Mode
}

// themeSavedMsg 主题保存结果
type themeSavedMsg struct {
	Err error
}
