package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/wayfarer/internal/config"
)

// Setup configures the global slog logger to write to stdout.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWriter(cfg, os.Stdout)
}

// SetupWriter configures the global slog logger to write to w. Production
// logs are JSON, everything else is text.
func SetupWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// SetupFile sends logs to cfg.LogFile, appending. The caller closes the file.
func SetupFile(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
	}
	return SetupWriter(cfg, f), f, nil
}

// WithGame tags every record with the game id.
func WithGame(logger *slog.Logger, gameID string) *slog.Logger {
	return logger.With("game_id", gameID)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
