package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
)

var ErrSaveNotFound = errors.New("save file not found")

// Storage loads the world document and reads and writes saved games.
type Storage interface {
	// LoadWorld decodes and validates the world document.
	LoadWorld(ctx context.Context) (*scenario.Scenario, error)

	// SaveGame writes a snapshot, replacing any previous save.
	SaveGame(ctx context.Context, save *SaveFile) error

	// LoadGame returns ErrSaveNotFound when nothing has been saved.
	LoadGame(ctx context.Context) (*SaveFile, error)
}

// SavedCharacter is the persisted part of a character. Location is stored by
// name and resolved again on load.
type SavedCharacter struct {
	Name     string              `yaml:"name"`
	Location string              `yaml:"location"`
	Memory   []actor.MemoryEntry `yaml:"memory"`
}

// SaveFile is the saved game document.
type SaveFile struct {
	Player     SavedCharacter            `yaml:"player"`
	Characters map[string]SavedCharacter `yaml:"characters"`
}
