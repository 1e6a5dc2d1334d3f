package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jwebster45206/wayfarer/internal/services"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string

	AIProvider string
	AIAPIKey   string
	AIModel    string
	AIBaseURL  string
	// SafetySettings maps a backend harm category to a block threshold.
	SafetySettings map[string]string
	ContentRating  string

	WorldFile     string
	SaveFile      string
	RedisAddr     string
	FollowPolicy  string
	PlayerName    string
	DialogueStyle string
}

// LoadDotEnv reads KEY=value pairs from the given files (default ".env")
// into the environment. Variables already set win. A missing file is not an
// error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("WAYFARER_LOG_FILE", "wayfarer.log"),

		AIProvider:     getEnv("AI_PROVIDER", ""),
		AIAPIKey:       getEnv("AI_API_KEY", ""),
		AIModel:        getEnv("AI_MODEL", ""),
		AIBaseURL:      getEnv("AI_BASE_URL", ""),
		SafetySettings: parseSafetySettings(getEnv("AI_SAFETY_SETTINGS", "")),
		ContentRating:  getEnv("CONTENT_RATING", "PG13"),

		WorldFile:     getEnv("WORLD_FILE", "game_setting.yaml"),
		SaveFile:      getEnv("SAVE_FILE", "save_game.yaml"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		FollowPolicy:  getEnv("FOLLOW_POLICY", "none"),
		PlayerName:    getEnv("PLAYER_NAME", ""),
		DialogueStyle: getEnv("DIALOGUE_STYLE", "single"),
	}
}

// ProviderConfig is the AI backend configuration.
func (c *Config) ProviderConfig() services.ProviderConfig {
	return services.ProviderConfig{
		Kind:      c.AIProvider,
		APIKey:    c.AIAPIKey,
		ModelName: c.AIModel,
		BaseURL:   c.AIBaseURL,
		Safety: &services.SafetyPolicy{
			Rating:     c.ContentRating,
			Categories: c.SafetySettings,
		},
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseSafetySettings reads "CATEGORY=THRESHOLD" pairs separated by commas.
// Malformed pairs are skipped.
func parseSafetySettings(raw string) map[string]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
