//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/chudadi/internal/card"
	"github.com/palemoky/chudadi/internal/protocol"
)

// MockTransport 实现 transport.Transport 的 mock
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) NewGame(ctx context.Context) (*protocol.NewGameResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.NewGameResponse), args.Error(1)
}

func (m *MockTransport) Play(ctx context.Context, gameID string, cards []card.Card) (*protocol.TurnResponse, error) {
	args := m.Called(ctx, gameID, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.TurnResponse), args.Error(1)
}

func (m *MockTransport) Pass(ctx context.Context, gameID string) (*protocol.TurnResponse, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.TurnResponse), args.Error(1)
}

func (m *MockTransport) Close() error {
	args := m.Called()
	return args.Error(0)
}
