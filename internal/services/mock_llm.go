package services

import (
	"context"
	"sync"
)

// MockProvider is a scripted Provider for tests and offline play.
type MockProvider struct {
	GenerateFunc func(ctx context.Context, req GenerateRequest) (string, error)

	// Responses are returned in order before falling back to the default.
	Responses []string

	// Track calls for testing
	GenerateCalls []GenerateRequest

	mu sync.Mutex // protects all fields above
}

// NewMockProvider creates a mock that answers "Mock response".
func NewMockProvider() *MockProvider {
	return &MockProvider{
		GenerateCalls: make([]GenerateRequest, 0),
	}
}

// Generate records the call and answers from the script.
func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateCalls = append(m.GenerateCalls, req)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	if len(m.Responses) > 0 {
		next := m.Responses[0]
		m.Responses = m.Responses[1:]
		return next, nil
	}
	return "Mock response", nil
}

// SetResponse makes every call return text.
func (m *MockProvider) SetResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateFunc = func(ctx context.Context, req GenerateRequest) (string, error) {
		return text, nil
	}
}

// SetGenerateError makes every call fail with err.
func (m *MockProvider) SetGenerateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateFunc = func(ctx context.Context, req GenerateRequest) (string, error) {
		return "", err
	}
}

// CallCount returns how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateCalls)
}

// GetCalls returns a copy of the recorded requests.
func (m *MockProvider) GetCalls() []GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateRequest, len(m.GenerateCalls))
	copy(out, m.GenerateCalls)
	return out
}

// Reset clears all call tracking
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = make([]GenerateRequest, 0)
}
