package apperrors

import (
	"errors"
	"fmt"
)

// Kind 客户端错误分类
type Kind int

const (
	KindUnknown   Kind = iota
	KindTransport      // 请求未完成（网络/HTTP 失败）
	KindRejected       // 服务端拒绝（规则校验失败）
	KindMalformed      // 响应格式不符合约定
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// GameError 游戏错误
type GameError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GameError) Unwrap() error { return e.Err }

// Is 同类错误视为相等，便于 errors.Is 与预定义错误比较
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// 预定义错误
var (
	ErrTransport = &GameError{Kind: KindTransport}
	ErrRejected  = &GameError{Kind: KindRejected}
	ErrMalformed = &GameError{Kind: KindMalformed}
)

// Transport 包装网络失败
func Transport(err error) error {
	return &GameError{Kind: KindTransport, Message: "网络错误", Err: err}
}

// Rejected 服务端返回的错误信息，原样展示
func Rejected(message string) error {
	return &GameError{Kind: KindRejected, Message: message}
}

// Malformed 响应格式错误
func Malformed(format string, args ...any) error {
	return &GameError{Kind: KindMalformed, Message: "响应格式错误", Err: fmt.Errorf(format, args...)}
}

// KindOf 返回错误分类
func KindOf(err error) Kind {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// UserMessage 返回展示给玩家的文本
func UserMessage(err error) string {
	var ge *GameError
	if !errors.As(err, &ge) {
		return "未知错误"
	}
	switch ge.Kind {
	case KindRejected:
		return ge.Message
	case KindTransport:
		return "网络错误，请重试"
	case KindMalformed:
		return "服务器响应异常，请重试"
	default:
		return ge.Message
	}
}
