package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/chat"
	"github.com/jwebster45206/wayfarer/pkg/prompts"
)

const (
	// FallbackSentinel is shown and recorded when the AI gives no reply.
	FallbackSentinel = "..."
	// ExitToken closes an open interaction.
	ExitToken = "back"

	DialogueMaxTokens   = 150
	DialogueTemperature = 1.0
)

var (
	ErrNotHere         = errors.New("character is not here")
	ErrSelfInteraction = errors.New("cannot interact with yourself")
	ErrSessionOpen     = errors.New("an interaction is already open")
	ErrNotOpen         = errors.New("interaction is not open")
)

type State int

const (
	Idle State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Style selects which prompt shape a session sends.
type Style int

const (
	// StyleSingle sends one self-contained prompt per turn.
	StyleSingle Style = iota
	// StylePersona sends the persona as a system instruction and the turn as
	// the prompt.
	StylePersona
)

// ParseStyle accepts "single" or "persona". Anything else is StyleSingle.
func ParseStyle(s string) Style {
	if strings.EqualFold(strings.TrimSpace(s), "persona") {
		return StylePersona
	}
	return StyleSingle
}

// AI is the part of the AI service a session needs. Both calls return "" on
// failure.
type AI interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) string
	GenerateWithPersona(ctx context.Context, persona, prompt string, maxTokens int, temperature float64) string
}

// Options tune dialogue generation.
type Options struct {
	Style       Style
	Guidance    string // content-rating line added to the persona
	MaxTokens   int
	// Temperature overrides DialogueTemperature when set. Zero is valid.
	Temperature *float64
}

// IsExit reports whether input is the exit token.
func IsExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), ExitToken)
}

// Session is one exchange between the player and a character. The transcript
// lives on the target character; the session only appends to it and drains
// it on close.
type Session struct {
	ID     uuid.UUID
	player *actor.Character
	target *actor.Character
	state  State

	manager *Manager
}

// CloseResult describes what happened when a session closed.
type CloseResult struct {
	Turns      int
	Summarized bool
	Entry      actor.MemoryEntry
}

func (s *Session) State() State { return s.state }

func (s *Session) Target() *actor.Character { return s.target }

func (s *Session) Player() *actor.Character { return s.player }

func (s *Session) IsOpen() bool { return s.state == Open }

// Say sends one player utterance and returns the character's reply. AI
// failures become FallbackSentinel and are never returned as errors.
func (s *Session) Say(ctx context.Context, utterance string) (string, error) {
	if s.state != Open {
		return "", ErrNotOpen
	}
	if err := chat.ValidateUtterance(utterance); err != nil {
		return "", err
	}
	utterance = strings.TrimSpace(utterance)

	m := s.manager
	prior := s.target.Transcript()
	s.target.AppendTurn(chat.ChatRoleUser, utterance)

	b := prompts.New().
		WithSpeaker(s.target).
		WithCounterpart(s.player).
		WithLocation(s.target.Location).
		WithMemory(s.target.RecentMemory(prompts.MemoryWindow)).
		WithTranscript(prior).
		WithUtterance(utterance).
		WithGuidance(m.opts.Guidance)

	var reply string
	switch m.opts.Style {
	case StylePersona:
		persona, turn, err := b.BuildPersona()
		if err != nil {
			return "", err
		}
		reply = m.ai.GenerateWithPersona(ctx, persona, turn, m.opts.MaxTokens, m.temperature)
	default:
		prompt, err := b.Build()
		if err != nil {
			return "", err
		}
		reply = m.ai.Generate(ctx, prompt, m.opts.MaxTokens, m.temperature)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		m.logger.Warn("No reply from AI, using fallback", "session_id", s.ID, "character", s.target.Name)
		reply = FallbackSentinel
	}
	s.target.AppendTurn(chat.ChatRoleAgent, reply)
	return reply, nil
}

// Close ends the session. A non-empty transcript is summarized exactly once
// and then drained; an empty one makes no AI call.
func (s *Session) Close(ctx context.Context) (CloseResult, error) {
	if s.state != Open {
		return CloseResult{}, ErrNotOpen
	}
	m := s.manager

	transcript := s.target.Transcript()
	result := CloseResult{Turns: len(transcript)}
	if len(transcript) > 0 {
		result.Entry, result.Summarized = m.summarizer.Summarize(ctx, s.target, transcript)
	}
	s.target.DrainTranscript()

	s.state = Closed
	if m.active == s {
		m.active = nil
	}
	m.logger.Info("Interaction closed",
		"session_id", s.ID,
		"character", s.target.Name,
		"turns", result.Turns,
		"summarized", result.Summarized)
	return result, nil
}
