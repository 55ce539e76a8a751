package usecase

import (
	"context"

	"github.com/shopassist/backend/internal/domain"
)

// MockChatCompleter is a mock implementation of domain.ChatCompleter
type MockChatCompleter struct {
	response string
	err      error
	calls    int
	lastReq  domain.ChatRequest
}

func NewMockChatCompleter(response string, err error) *MockChatCompleter {
	return &MockChatCompleter{response: response, err: err}
}

func (m *MockChatCompleter) Complete(ctx context.Context, req domain.ChatRequest) (string, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}
