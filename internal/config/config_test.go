package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "LOG_LEVEL", "AI_PROVIDER", "CONTENT_RATING", "WORLD_FILE", "SAVE_FILE", "FOLLOW_POLICY", "AI_SAFETY_SETTINGS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "", cfg.AIProvider)
	assert.Equal(t, "PG13", cfg.ContentRating)
	assert.Equal(t, "game_setting.yaml", cfg.WorldFile)
	assert.Equal(t, "save_game.yaml", cfg.SaveFile)
	assert.Equal(t, "none", cfg.FollowPolicy)
	assert.Nil(t, cfg.SafetySettings)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AI_PROVIDER", "google")
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("AI_MODEL", "gemini-2.5-pro")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("CONTENT_RATING", "G")
	t.Setenv("AI_SAFETY_SETTINGS", "HARM_CATEGORY_HARASSMENT=BLOCK_ONLY_HIGH, bad, =x")

	cfg := Load()
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)

	pc := cfg.ProviderConfig()
	assert.Equal(t, "google", pc.Kind)
	assert.Equal(t, "secret", pc.APIKey)
	assert.Equal(t, "gemini-2.5-pro", pc.ModelName)
	require.NotNil(t, pc.Safety)
	assert.Equal(t, "G", pc.Safety.Rating)
	assert.Equal(t, map[string]string{"HARM_CATEGORY_HARASSMENT": "BLOCK_ONLY_HIGH"}, pc.Safety.Categories)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("chatty"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("WAYFARER_TEST_KEY=from-file\nPLAYER_NAME=Mara\n"), 0o644))

	t.Setenv("WAYFARER_TEST_KEY", "")
	os.Unsetenv("WAYFARER_TEST_KEY")
	t.Setenv("PLAYER_NAME", "Bram")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("WAYFARER_TEST_KEY"))
	assert.Equal(t, "Bram", os.Getenv("PLAYER_NAME"), "existing variables win")

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
