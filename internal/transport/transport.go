// Package transport talks to the game server. Two implementations share
// the same request/response contract: plain HTTP POSTs to /api/<name> and
// a WebSocket connection carrying {type,id,payload} envelopes.
package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/palemoky/chudadi/internal/apperrors"
	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/config"
	"github.com/palemoky/chudadi/internal/protocol"
)

// Transport 游戏服务器接口
type Transport interface {
	NewGame(ctx context.Context) (*protocol.NewGameResponse, error)
	Play(ctx context.Context, gameID string, cards []card.Card) (*protocol.TurnResponse, error)
	Pass(ctx context.Context, gameID string) (*protocol.TurnResponse, error)
	Close() error
}

// New 根据配置创建传输层
func New(cfg config.ServerConfig) (Transport, error) {
	timeout := cfg.RequestTimeoutDuration()
	switch cfg.Transport {
	case config.TransportHTTP, "":
		return NewHTTP(cfg.URL, timeout), nil
	case config.TransportWebSocket:
		url, err := WebSocketURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		return NewWebSocket(url, timeout), nil
	default:
		return nil, fmt.Errorf("未知的传输方式: %s", cfg.Transport)
	}
}

// decodeNewGame 解析并校验 new_game 响应
func decodeNewGame(data []byte) (*protocol.NewGameResponse, error) {
	var rejected struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &rejected); err == nil && rejected.Error != "" {
		return nil, apperrors.Rejected(rejected.Error)
	}

	var resp protocol.NewGameResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, apperrors.Malformed("解析 new_game 响应失败: %v", err)
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// decodeTurn 解析 play / pass_turn 响应，服务端拒绝时返回 Rejected 错误
func decodeTurn(t protocol.MessageType, data []byte) (*protocol.TurnResponse, error) {
	var resp protocol.TurnResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, apperrors.Malformed("解析 %s 响应失败: %v", t, err)
	}
	if resp.Error != "" {
		return nil, apperrors.Rejected(resp.Error)
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}
