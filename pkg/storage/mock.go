package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu      sync.RWMutex
	world   *scenario.Scenario
	save    *SaveFile
	saveErr error
	loadErr error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a mock serving world.
func NewMockStorage(world *scenario.Scenario) *MockStorage {
	return &MockStorage{world: world}
}

// SetSaveError makes SaveGame fail with err.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SetLoadError makes LoadGame fail with err.
func (m *MockStorage) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// PutSave replaces the stored save directly.
func (m *MockStorage) PutSave(save *SaveFile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.save = cloneSave(save)
}

func (m *MockStorage) LoadWorld(ctx context.Context) (*scenario.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.world == nil {
		return nil, errors.New("world not found")
	}
	if _, err := m.world.Validate(); err != nil {
		return nil, err
	}
	return m.world, nil
}

func (m *MockStorage) SaveGame(ctx context.Context, save *SaveFile) error {
	if save == nil {
		return errors.New("save cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.save = cloneSave(save)
	return nil
}

func (m *MockStorage) LoadGame(ctx context.Context) (*SaveFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.save == nil {
		return nil, ErrSaveNotFound
	}
	return cloneSave(m.save), nil
}

// cloneSave deep-copies a save so callers cannot reach stored state.
func cloneSave(s *SaveFile) *SaveFile {
	if s == nil {
		return nil
	}
	out := &SaveFile{Player: cloneCharacter(s.Player)}
	if s.Characters != nil {
		out.Characters = make(map[string]SavedCharacter, len(s.Characters))
		for k, v := range s.Characters {
			out.Characters[k] = cloneCharacter(v)
		}
	}
	return out
}

func cloneCharacter(c SavedCharacter) SavedCharacter {
	mem := make([]actor.MemoryEntry, len(c.Memory))
	copy(mem, c.Memory)
	c.Memory = mem
	return c
}
