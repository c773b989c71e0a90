package protocol

import (
	"encoding/json"
	"fmt"
)

// Message 基础消息结构，WebSocket 传输时用作信封
type Message struct {
	Type    MessageType     `json:"type"`
	ID      string          `json:"id,omitempty"` // 请求与响应配对
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端，同时也是 HTTP 接口名 (/api/<type>)
const (
	MsgNewGame  MessageType = "new_game"  // 开新局
	MsgPlay     MessageType = "play"      // 出牌
	MsgPassTurn MessageType = "pass_turn" // 不出
)

// 服务端 → 客户端
const (
	MsgResult MessageType = "result" // 请求结果
	MsgError  MessageType = "error"  // 错误消息
)

// Path 返回 HTTP 接口路径
func (t MessageType) Path() string {
	return "/api/" + string(t)
}

// NewMessage 创建一个新消息
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	msg := &Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("编码 %s 消息失败: %w", msgType, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType MessageType, payload any) *Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 将消息编码为 JSON 字节
func Encode(m *Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode 从 JSON 字节解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("消息缺少 type 字段")
	}
	return &msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型
func ParsePayload[T any](msg *Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return nil, fmt.Errorf("%s 消息缺少 payload", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
