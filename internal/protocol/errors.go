package protocol

// 错误码，仅用于 WebSocket 信封中的 error 消息
const (
	ErrCodeUnknown     = 1000
	ErrCodeInvalidMsg  = 1001
	ErrCodeGameMissing = 2001
	ErrCodeNotYourTurn = 3002
	ErrCodeRejected    = 3003
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:     "未知错误",
	ErrCodeInvalidMsg:  "无效的消息格式",
	ErrCodeGameMissing: "游戏不存在",
	ErrCodeNotYourTurn: "不是你的回合",
	ErrCodeRejected:    "出牌不合法",
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Text 返回错误文字，只有错误码时用预定义的消息
func (p *ErrorPayload) Text() string {
	if p.Message != "" {
		return p.Message
	}
	if msg, ok := ErrorMessages[p.Code]; ok {
		return msg
	}
	return ErrorMessages[ErrCodeUnknown]
}
