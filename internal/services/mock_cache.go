package services

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-memory Cache for tests. It records every Set.
type MockCache struct {
	PingErr error
	GetErr  error
	SetErr  error

	SetCalls   []SetCall
	GetCalls   []string
	CloseCalls int

	data map[string]string
	mu   sync.Mutex
}

type SetCall struct {
	Key        string
	Value      string
	Expiration time.Duration
}

var _ Cache = (*MockCache)(nil)

// NewMockCache creates an empty mock cache
func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, SetCall{Key: key, Value: value, Expiration: expiration})
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, key)
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.data[key], nil
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MockCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}
