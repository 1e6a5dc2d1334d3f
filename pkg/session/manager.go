package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/memory"
)

// Manager opens sessions and keeps at most one open at a time.
type Manager struct {
	ai          AI
	summarizer  *memory.Summarizer
	opts        Options
	temperature float64
	logger      *slog.Logger

	active *Session
}

// NewManager applies dialogue defaults to opts.
func NewManager(ai AI, opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DialogueMaxTokens
	}
	temperature := DialogueTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	return &Manager{
		ai:          ai,
		summarizer:  memory.NewSummarizer(ai, logger),
		opts:        opts,
		temperature: temperature,
		logger:      logger,
	}
}

// Open starts a session between player and target. It is rejected when
// target is the player, is not in the player's location, or is already in an
// interaction. A rejection changes nothing.
func (m *Manager) Open(player, target *actor.Character) (*Session, error) {
	if player == nil {
		return nil, ErrNotHere
	}
	if target != nil && (target == player || target.Name == player.Name) {
		return nil, ErrSelfInteraction
	}
	if target == nil || !player.SharesLocationWith(target) {
		return nil, ErrNotHere
	}
	if (m.active != nil && m.active.IsOpen()) || target.InInteraction() {
		return nil, ErrSessionOpen
	}

	s := &Session{
		ID:      uuid.New(),
		player:  player,
		target:  target,
		state:   Open,
		manager: m,
	}
	m.active = s
	m.logger.Info("Interaction opened", "session_id", s.ID, "player", player.Name, "character", target.Name, "location", player.Location)
	return s, nil
}

// Active returns the open session, or nil.
func (m *Manager) Active() *Session {
	return m.active
}

// CloseActive closes the open session if there is one.
func (m *Manager) CloseActive(ctx context.Context) (CloseResult, bool) {
	if m.active == nil {
		return CloseResult{}, false
	}
	res, err := m.active.Close(ctx)
	if err != nil {
		return CloseResult{}, false
	}
	return res, true
}
