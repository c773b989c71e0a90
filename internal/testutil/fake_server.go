//go:build !production

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/palemoky/chudadi/internal/protocol"
)

// Reply 脚本化的服务端响应
type Reply struct {
	Status int
	Body   any
	Code   int // WebSocket error 消息的错误码，0 表示 ErrCodeRejected
}

// OK 200 响应
func OK(body any) Reply { return Reply{Status: http.StatusOK, Body: body} }

// Reject 400 {error} 响应
func Reject(message string) Reply {
	return Reply{Status: http.StatusBadRequest, Body: map[string]string{"error": message}}
}

// RejectCode 只带错误码、没有文字的拒绝，WebSocket 下消息为空
func RejectCode(code int) Reply {
	return Reply{Status: http.StatusBadRequest, Body: map[string]string{"error": ""}, Code: code}
}

// Raw 原样返回的响应体
type Raw string

// FakeServer 按脚本回复的游戏服务器，同时提供 /api/* 和 /ws
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[protocol.MessageType][]Reply
	requests []Request
	drop     bool
}

// Request 记录收到的请求
type Request struct {
	Type protocol.MessageType
	Body json.RawMessage
}

// NewFakeServer 启动服务器，测试结束时关闭
func NewFakeServer(t testing.TB) *FakeServer {
	t.Helper()

	f := &FakeServer{replies: make(map[protocol.MessageType][]Reply)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Post("/{type}", f.handleHTTP)
	})
	r.Get("/ws", f.handleWS)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Close)
	return f
}

// Script 为某个接口追加响应，按顺序消费
func (f *FakeServer) Script(t protocol.MessageType, replies ...Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[t] = append(f.replies[t], replies...)
}

// DropConnections 之后的 WebSocket 请求直接断开连接
func (f *FakeServer) DropConnections(drop bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drop = drop
}

// Requests 返回已收到的请求
func (f *FakeServer) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeServer) next(t protocol.MessageType, body json.RawMessage) (Reply, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, Request{Type: t, Body: body})
	queue := f.replies[t]
	if len(queue) == 0 {
		return Reply{}, false
	}
	f.replies[t] = queue[1:]
	return queue[0], true
}

func encodeBody(body any) []byte {
	if raw, ok := body.(Raw); ok {
		return []byte(raw)
	}
	data, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return data
}

func (f *FakeServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	t := protocol.MessageType(chi.URLParam(r, "type"))

	var body json.RawMessage
	if r.ContentLength != 0 {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	reply, ok := f.next(t, body)
	if !ok {
		http.Error(w, "no scripted reply", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_, _ = w.Write(encodeBody(reply.Body))
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func (f *FakeServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			f.writeWS(conn, &protocol.Message{
				Type:    protocol.MsgError,
				Payload: encodeBody(protocol.ErrorPayload{Code: protocol.ErrCodeInvalidMsg}),
			})
			continue
		}

		f.mu.Lock()
		drop := f.drop
		f.mu.Unlock()
		if drop {
			f.next(msg.Type, msg.Payload)
			return
		}

		reply, ok := f.next(msg.Type, msg.Payload)
		out := &protocol.Message{Type: protocol.MsgResult, ID: msg.ID}
		switch {
		case !ok:
			out.Type = protocol.MsgError
			out.Payload = encodeBody(protocol.ErrorPayload{Code: protocol.ErrCodeGameMissing})
		case reply.Status == http.StatusOK:
			out.Payload = encodeBody(reply.Body)
		default:
			var rejected struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(encodeBody(reply.Body), &rejected)
			code := reply.Code
			if code == 0 {
				code = protocol.ErrCodeRejected
			}
			out.Type = protocol.MsgError
			out.Payload = encodeBody(protocol.ErrorPayload{Code: code, Message: rejected.Error})
		}

		if !f.writeWS(conn, out) {
			return
		}
	}
}

func (f *FakeServer) writeWS(conn *websocket.Conn, msg *protocol.Message) bool {
	encoded, err := protocol.Encode(msg)
	if err != nil {
		return false
	}
	return conn.WriteMessage(websocket.TextMessage, encoded) == nil
}
