package memory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/chat"
	"github.com/jwebster45206/wayfarer/pkg/prompts"
)

const (
	SummaryMaxTokens   = 300
	SummaryTemperature = 0.3
)

// Generator is the part of the AI service the summarizer needs. It returns ""
// on failure.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) string
}

// Summarizer condenses a finished interaction into one memory entry.
type Summarizer struct {
	ai     Generator
	logger *slog.Logger
}

func NewSummarizer(ai Generator, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{ai: ai, logger: logger}
}

// Summarize asks for a summary of transcript and appends it to c's memory.
// It reports whether an entry was appended. An empty transcript makes no
// call. An empty summary leaves memory untouched.
func (s *Summarizer) Summarize(ctx context.Context, c *actor.Character, transcript []chat.ChatMessage) (actor.MemoryEntry, bool) {
	if c == nil || len(transcript) == 0 {
		return actor.MemoryEntry{}, false
	}

	summary := strings.TrimSpace(s.ai.Generate(ctx, prompts.SummaryPrompt(c.Name, transcript), SummaryMaxTokens, SummaryTemperature))
	if summary == "" {
		s.logger.Warn("Interaction summary unavailable, memory unchanged",
			"character", c.Name,
			"turns", len(transcript))
		return actor.MemoryEntry{}, false
	}

	entry := actor.MemoryEntry{Type: actor.MemoryTypeInteraction, Content: summary}
	if err := c.Remember(entry); err != nil {
		s.logger.Error("Failed to store memory", "character", c.Name, "error", err)
		return actor.MemoryEntry{}, false
	}

	s.logger.Debug("Interaction summarized", "character", c.Name, "memory_count", len(c.Memory()))
	return entry, true
}
