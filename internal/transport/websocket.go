package transport

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/chudadi/internal/apperrors"
	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/logger"
	"github.com/palemoky/chudadi/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
	bufferSize       = 16
)

var (
	errClosed       = errors.New("connection closed")
	errDisconnected = errors.New("connection lost")
)

// WebSocketURL 把 http(s) 地址换成 ws(s)，默认路径 /ws
func WebSocketURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("无效的服务器地址 %q: %w", base, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("不支持的协议: %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// conn 一条 WebSocket 连接及其读写协程
type conn struct {
	ws    *websocket.Conn
	send  chan []byte
	inbox chan *protocol.Message
	done  chan struct{}
	once  sync.Once
}

func (c *conn) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *conn) alive() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// WSClient 通过 WebSocket 收发请求。同一时间只有一个请求在途，
// 连接断开后下一个请求会重新拨号
type WSClient struct {
	url     string
	timeout time.Duration
	dialer  websocket.Dialer

	reqMu sync.Mutex // 串行化请求

	mu     sync.Mutex
	conn   *conn
	closed bool
}

// NewWebSocket 创建 WebSocket 传输，连接在第一次请求时建立
func NewWebSocket(url string, timeout time.Duration) *WSClient {
	return &WSClient{
		url:     url,
		timeout: timeout,
		dialer:  websocket.Dialer{HandshakeTimeout: handshakeTimeout},
	}
}

// NewGame 开新局
func (c *WSClient) NewGame(ctx context.Context) (*protocol.NewGameResponse, error) {
	data, err := c.request(ctx, protocol.MsgNewGame, nil)
	if err != nil {
		return nil, err
	}
	return decodeNewGame(data)
}

// Play 出牌
func (c *WSClient) Play(ctx context.Context, gameID string, cards []card.Card) (*protocol.TurnResponse, error) {
	data, err := c.request(ctx, protocol.MsgPlay, protocol.PlayRequest{GameID: gameID, Cards: cards})
	if err != nil {
		return nil, err
	}
	return decodeTurn(protocol.MsgPlay, data)
}

// Pass 不出
func (c *WSClient) Pass(ctx context.Context, gameID string) (*protocol.TurnResponse, error) {
	data, err := c.request(ctx, protocol.MsgPassTurn, protocol.PassRequest{GameID: gameID})
	if err != nil {
		return nil, err
	}
	return decodeTurn(protocol.MsgPassTurn, data)
}

// Close 关闭连接，之后的请求都会失败
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.conn != nil {
		c.conn.close()
		c.conn = nil
	}
	return nil
}

// Connected 是否有可用连接
func (c *WSClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil && c.conn.alive()
}

func (c *WSClient) connect(ctx context.Context) (*conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, apperrors.Transport(errClosed)
	}
	if c.conn != nil && c.conn.alive() {
		return c.conn, nil
	}

	ws, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		logger.WithField("url", c.url).Warnf("连接失败: %v", err)
		return nil, apperrors.Transport(err)
	}
	logger.WithField("url", c.url).Info("已连接")

	cn := &conn{
		ws:    ws,
		send:  make(chan []byte, bufferSize),
		inbox: make(chan *protocol.Message, bufferSize),
		done:  make(chan struct{}),
	}
	go cn.readPump()
	go cn.writePump()
	c.conn = cn
	return cn, nil
}

// request 发送一个请求并等待同 ID 的响应
func (c *WSClient) request(ctx context.Context, t protocol.MessageType, payload any) ([]byte, error) {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		return nil, err
	}
	msg.ID = uuid.NewString()
	data, err := protocol.Encode(msg)
	if err != nil {
		return nil, err
	}

	select {
	case cn.send <- data:
	case <-cn.done:
		return nil, apperrors.Transport(errDisconnected)
	case <-ctx.Done():
		return nil, apperrors.Transport(ctx.Err())
	}

	for {
		select {
		case reply := <-cn.inbox:
			if reply.ID != msg.ID {
				logger.WithField("id", reply.ID).Debug("丢弃不匹配的响应")
				continue
			}
			return replyPayload(t, reply)
		case <-cn.done:
			return nil, apperrors.Transport(errDisconnected)
		case <-ctx.Done():
			// 迟到的响应会被下一次请求按 ID 丢弃
			return nil, apperrors.Transport(ctx.Err())
		}
	}
}

func replyPayload(t protocol.MessageType, reply *protocol.Message) ([]byte, error) {
	switch reply.Type {
	case protocol.MsgResult:
		if len(reply.Payload) == 0 {
			return nil, apperrors.Malformed("%s 响应缺少 payload", t)
		}
		return reply.Payload, nil
	case protocol.MsgError:
		p, err := protocol.ParsePayload[protocol.ErrorPayload](reply)
		if err != nil {
			return nil, apperrors.Malformed("解析错误消息失败: %v", err)
		}
		return nil, apperrors.Rejected(p.Text())
	default:
		return nil, apperrors.Malformed("未知的响应类型: %s", reply.Type)
	}
}

// readPump 从服务器读取消息
func (c *conn) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.close()
	}()

	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.LogError("连接异常断开: %v", err)
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logger.LogError("消息解析错误: %v", err)
			continue
		}

		select {
		case c.inbox <- msg:
		case <-c.done:
			return
		}
	}
}

// writePump 向服务器写入消息并定时 ping
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
