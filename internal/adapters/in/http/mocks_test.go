package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockHandler is a mock implementation of the Handler interface.
type MockHandler[Q, R any] struct {
	mock.Mock
}

func (m *MockHandler[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	args := m.Called(ctx, q)

	var result R
	if v := args.Get(0); v != nil {
		result = v.(R)
	}
	return result, args.Error(1)
}

// MockCommandHandler is a mock implementation of the CommandHandler interface.
type MockCommandHandler[C any] struct {
	mock.Mock
}

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
