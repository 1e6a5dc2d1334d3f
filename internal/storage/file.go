package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/scenario"
	pkgstorage "github.com/jwebster45206/wayfarer/pkg/storage"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWorldFile = "game_setting.yaml"
	DefaultSaveFile  = "save_game.yaml"
)

// FileStorage implements Storage with YAML files on disk.
type FileStorage struct {
	worldPath string
	savePath  string
	logger    *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ pkgstorage.Storage = (*FileStorage)(nil)

// NewFileStorage creates file storage. Empty paths use the defaults.
func NewFileStorage(worldPath, savePath string, logger *slog.Logger) *FileStorage {
	if worldPath == "" {
		worldPath = DefaultWorldFile
	}
	if savePath == "" {
		savePath = DefaultSaveFile
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStorage{worldPath: worldPath, savePath: savePath, logger: logger}
}

// SavePath returns where games are saved.
func (f *FileStorage) SavePath() string {
	return f.savePath
}

func (f *FileStorage) LoadWorld(ctx context.Context) (*scenario.Scenario, error) {
	f.logger.Debug("Loading world", "path", f.worldPath)

	data, err := os.ReadFile(f.worldPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("world file not found: %s", f.worldPath)
		}
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	s, err := scenario.Decode(data, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.worldPath, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(f.worldPath), filepath.Ext(f.worldPath))
	}

	warnings, err := s.Validate()
	for _, w := range warnings {
		f.logger.Warn("World file warning", "path", f.worldPath, "warning", w)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.worldPath, err)
	}
	return s, nil
}

// SaveGame writes the snapshot to a temporary file and renames it into
// place, so a failed write never clobbers the previous save.
func (f *FileStorage) SaveGame(ctx context.Context, save *pkgstorage.SaveFile) error {
	if save == nil {
		return errors.New("save cannot be nil")
	}

	data, err := yaml.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to marshal save: %w", err)
	}

	dir := filepath.Dir(f.savePath)
	tmp, err := os.CreateTemp(dir, ".save-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create save file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmpName, f.savePath); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	f.logger.Info("Game saved", "path", f.savePath, "characters", len(save.Characters))
	return nil
}

func (f *FileStorage) LoadGame(ctx context.Context) (*pkgstorage.SaveFile, error) {
	data, err := os.ReadFile(f.savePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", f.savePath, pkgstorage.ErrSaveNotFound)
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var save pkgstorage.SaveFile
	if err := yaml.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("failed to parse save file: %w", err)
	}
	if strings.TrimSpace(save.Player.Name) == "" {
		return nil, fmt.Errorf("no player data in save file %s", f.savePath)
	}
	return &save, nil
}
