package narrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/wayfarer/pkg/prompts"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
)

const (
	FallbackDescription = "A mysterious world."

	MaxTokens   = 300
	Temperature = 1.0

	CacheTTL       = 7 * 24 * time.Hour
	cacheKeyPrefix = "wayfarer:world:"
)

// Generator returns generated text, or "" on failure.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) string
}

// Cache keeps generated descriptions between runs. Get returns "" for a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

// Narrator expands the world document's one-line description into the
// opening text of the game.
type Narrator struct {
	ai     Generator
	voice  *scenario.Narrator
	cache  Cache
	logger *slog.Logger
}

// New creates a narrator. voice and cache may be nil.
func New(ai Generator, voice *scenario.Narrator, cache Cache, logger *slog.Logger) *Narrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Narrator{ai: ai, voice: voice, cache: cache, logger: logger}
}

// DescribeWorld returns a detailed description of the world. It never fails:
// when the AI gives nothing it returns FallbackDescription.
func (n *Narrator) DescribeWorld(ctx context.Context, description string) string {
	prompt := prompts.WorldPrompt(description, n.voice)
	key := CacheKey(prompt)

	if n.cache != nil {
		cached, err := n.cache.Get(ctx, key)
		if err != nil {
			n.logger.Warn("World description cache unavailable", "error", err)
		} else if cached != "" {
			n.logger.Debug("World description served from cache", "key", key)
			return cached
		}
	}

	text := strings.TrimSpace(n.ai.Generate(ctx, prompt, MaxTokens, Temperature))
	if text == "" {
		n.logger.Warn("World description unavailable, using fallback")
		return FallbackDescription
	}

	if n.cache != nil {
		if err := n.cache.Set(ctx, key, text, CacheTTL); err != nil {
			n.logger.Warn("Failed to cache world description", "error", err)
		}
	}
	return text
}

// CacheKey derives the cache key for a world prompt.
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:12])
}
