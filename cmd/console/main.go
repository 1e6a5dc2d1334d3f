package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/wayfarer/internal/config"
	"github.com/jwebster45206/wayfarer/internal/logger"
	"github.com/jwebster45206/wayfarer/internal/services"
	"github.com/jwebster45206/wayfarer/internal/storage"
	"github.com/jwebster45206/wayfarer/pkg/narrator"
	"github.com/jwebster45206/wayfarer/pkg/session"
	"github.com/jwebster45206/wayfarer/pkg/state"
)

const (
	warmupTimeout   = 90 * time.Second
	cacheAttempts   = 3
	cacheRetryDelay = time.Second
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	log, logFile, err := logger.SetupFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, log)
	_ = logFile.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run builds the game from configuration and drives the UI until the player
// quits. Configuration and world errors return before the UI starts.
func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	store := storage.NewFileStorage(cfg.WorldFile, cfg.SaveFile, log)
	world, err := store.LoadWorld(ctx)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load world")
		return err
	}

	policy, err := state.ParseFollowPolicy(cfg.FollowPolicy)
	if err != nil {
		return err
	}
	game, err := state.NewGame(world, cfg.PlayerName, policy, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to start game")
		return err
	}
	log = logger.WithGame(log, game.ID.String())

	ai, err := services.NewAIServiceFromConfig(ctx, cfg.ProviderConfig(), log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to configure AI provider")
		return err
	}
	if w, ok := ai.Provider().(services.Warmer); ok {
		fmt.Println("Waking up the language model...")
		wctx, cancel := context.WithTimeout(ctx, warmupTimeout)
		err := w.Warmup(wctx)
		cancel()
		if err != nil {
			logger.WithError(log, err).Warn("AI warmup failed; continuing")
		}
	}

	var cache narrator.Cache
	if cfg.RedisAddr != "" {
		rc := services.NewRedisCache(cfg.RedisAddr, log)
		if err := rc.WaitForConnection(ctx, cacheAttempts, cacheRetryDelay); err != nil {
			logger.WithError(log, err).Warn("Redis unavailable; world text will not be cached", "addr", cfg.RedisAddr)
			_ = rc.Close()
		} else {
			defer func() { _ = rc.Close() }()
			cache = rc
		}
	}

	fmt.Println("Setting the scene...")
	intro := narrator.New(ai, world.Narrator, cache, log).DescribeWorld(ctx, world.Description())

	sessions := session.NewManager(ai, session.Options{
		Style:    session.ParseStyle(cfg.DialogueStyle),
		Guidance: ai.Policy().Guidance(),
	}, log)
	ctrl := state.NewController(game, sessions, store, log)

	p := tea.NewProgram(NewConsoleUI(ctrl, intro),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	_, err = p.Run()

	ctrl.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}
