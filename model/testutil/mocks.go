package testutil

import (
	"context"
	"sync"
)

// SendCall records one MockExchanger.Send invocation.
type SendCall struct {
	SessionID string
	Text      string
}

// MockExchanger implements model.Exchanger for testing
type MockExchanger struct {
	// Configurable responses
	SendFunc        func(ctx context.Context, sessionID, text string) (string, error)
	ResetRemoteFunc func(ctx context.Context, sessionID string) error

	mu         sync.Mutex
	sends      []SendCall
	resetCalls []string
}

// NewMockExchanger creates a mock that answers every message with reply.
func NewMockExchanger(reply string) *MockExchanger {
	mock := &MockExchanger{}
	mock.SendFunc = func(ctx context.Context, sessionID, text string) (string, error) {
		return reply, nil
	}
	mock.ResetRemoteFunc = func(ctx context.Context, sessionID string) error {
		return nil
	}
	return mock
}

// NewFailingExchanger creates a mock whose calls all fail with err.
func NewFailingExchanger(err error) *MockExchanger {
	mock := &MockExchanger{}
	mock.SendFunc = func(ctx context.Context, sessionID, text string) (string, error) {
		return "", err
	}
	mock.ResetRemoteFunc = func(ctx context.Context, sessionID string) error {
		return err
	}
	return mock
}

func (m *MockExchanger) Send(ctx context.Context, sessionID, text string) (string, error) {
	m.mu.Lock()
	m.sends = append(m.sends, SendCall{SessionID: sessionID, Text: text})
	m.mu.Unlock()
	return m.SendFunc(ctx, sessionID, text)
}

func (m *MockExchanger) ResetRemote(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	m.resetCalls = append(m.resetCalls, sessionID)
	m.mu.Unlock()
	return m.ResetRemoteFunc(ctx, sessionID)
}

// Sends returns the recorded Send calls in order.
func (m *MockExchanger) Sends() []SendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendCall(nil), m.sends...)
}

// ResetCalls returns the session ids passed to ResetRemote in order.
func (m *MockExchanger) ResetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.resetCalls...)
}
