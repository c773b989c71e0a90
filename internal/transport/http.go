package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/palemoky/chudadi/internal/apperrors"
	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/logger"
	"github.com/palemoky/chudadi/internal/protocol"
)

// 响应体上限
const maxBodySize = 1 << 20

// HTTPClient 通过 HTTP 调用 /api/* 接口
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTP 创建 HTTP 传输
func NewHTTP(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NewGame 开新局
func (c *HTTPClient) NewGame(ctx context.Context) (*protocol.NewGameResponse, error) {
	data, err := c.post(ctx, protocol.MsgNewGame, nil)
	if err != nil {
		return nil, err
	}
	return decodeNewGame(data)
}

// Play 出牌
func (c *HTTPClient) Play(ctx context.Context, gameID string, cards []card.Card) (*protocol.TurnResponse, error) {
	data, err := c.post(ctx, protocol.MsgPlay, protocol.PlayRequest{GameID: gameID, Cards: cards})
	if err != nil {
		return nil, err
	}
	return decodeTurn(protocol.MsgPlay, data)
}

// Pass 不出
func (c *HTTPClient) Pass(ctx context.Context, gameID string) (*protocol.TurnResponse, error) {
	data, err := c.post(ctx, protocol.MsgPassTurn, protocol.PassRequest{GameID: gameID})
	if err != nil {
		return nil, err
	}
	return decodeTurn(protocol.MsgPassTurn, data)
}

// Close 释放空闲连接
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// post 发送 JSON 请求。200 和 400 都返回响应体，400 的 {error} 由调用方解析
func (c *HTTPClient) post(ctx context.Context, t protocol.MessageType, body any) ([]byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("编码 %s 请求失败: %w", t, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+t.Path(), reader)
	if err != nil {
		return nil, apperrors.Transport(err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.WithField("api", t).Warnf("请求失败: %v", err)
		return nil, apperrors.Transport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, apperrors.Transport(err)
	}

	logger.WithFields(map[string]any{
		"api":     t,
		"status":  resp.StatusCode,
		"latency": time.Since(start).Milliseconds(),
	}).Debug("响应")

	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest:
		return data, nil
	default:
		return nil, apperrors.Transport(fmt.Errorf("%s: HTTP %d", t, resp.StatusCode))
	}
}
