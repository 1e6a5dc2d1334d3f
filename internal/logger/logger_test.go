package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/wayfarer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	log := SetupWriter(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)
	log.Info("hello", "player", "Mara")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "Mara", rec["player"])

	buf.Reset()
	log = SetupWriter(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)
	log.Info("dropped")
	assert.Empty(t, buf.String())
	WithError(log, errors.New("boom")).Warn("kept")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfarer.log")
	log, closer, err := SetupFile(&config.Config{LogFile: path, LogLevel: slog.LevelInfo})
	require.NoError(t, err)

	WithGame(log, "g-1").Info("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "game_id=g-1")

	_, _, err = SetupFile(&config.Config{LogFile: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
