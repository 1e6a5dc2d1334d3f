package prompts

import (
	"fmt"

	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/chat"
)

// Builder assembles a dialogue prompt using a fluent interface.
// Both Build and BuildPersona read the same inputs, so the two shapes always
// carry the same persona and memory.
type Builder struct {
	speaker     *actor.Character
	counterpart *actor.Character
	location    string
	memory      []actor.MemoryEntry
	transcript  []chat.ChatMessage
	utterance   string
	guidance    string
	memoryLimit int
}

// New creates a builder with the default memory window.
func New() *Builder {
	return &Builder{memoryLimit: MemoryWindow}
}

// WithSpeaker sets the character who will reply.
func (b *Builder) WithSpeaker(c *actor.Character) *Builder {
	b.speaker = c
	return b
}

// WithCounterpart sets who the speaker is talking to, usually the player.
func (b *Builder) WithCounterpart(c *actor.Character) *Builder {
	b.counterpart = c
	return b
}

// WithLocation sets the location name.
func (b *Builder) WithLocation(name string) *Builder {
	b.location = name
	return b
}

// WithMemory sets the speaker's memory. The full list may be passed.
func (b *Builder) WithMemory(m []actor.MemoryEntry) *Builder {
	b.memory = m
	return b
}

// WithTranscript sets the conversation so far, excluding the new utterance.
func (b *Builder) WithTranscript(t []chat.ChatMessage) *Builder {
	b.transcript = t
	return b
}

// WithUtterance sets what the counterpart just said or did.
func (b *Builder) WithUtterance(u string) *Builder {
	b.utterance = u
	return b
}

// WithGuidance appends a content-rating line to the persona.
func (b *Builder) WithGuidance(g string) *Builder {
	b.guidance = g
	return b
}

// WithMemoryLimit narrows the memory window. Values above MemoryWindow or
// below zero are clamped.
func (b *Builder) WithMemoryLimit(n int) *Builder {
	switch {
	case n < 0:
		n = 0
	case n > MemoryWindow:
		n = MemoryWindow
	}
	b.memoryLimit = n
	return b
}

// Build renders the single-shot dialogue prompt.
func (b *Builder) Build() (string, error) {
	if b.speaker == nil {
		return "", fmt.Errorf("speaker is required")
	}
	prompt := DialoguePrompt(b.speaker, b.counterpart, b.location, b.windowed(), b.transcript, b.utterance)
	return b.withGuidance(prompt), nil
}

// BuildPersona renders the system-instruction persona and the live turn that
// goes with it.
func (b *Builder) BuildPersona() (persona string, turn string, err error) {
	if b.speaker == nil {
		return "", "", fmt.Errorf("speaker is required")
	}
	persona = b.withGuidance(PersonaBlock(b.speaker, b.counterpart, b.location, b.windowed()))
	turn = TurnPrompt(b.speaker, b.counterpart, b.transcript, b.utterance)
	return persona, turn, nil
}

func (b *Builder) windowed() []actor.MemoryEntry {
	return actor.LastN(b.memory, b.memoryLimit)
}

func (b *Builder) withGuidance(prompt string) string {
	if b.guidance == "" {
		return prompt
	}
	return prompt + "\n" + b.guidance
}
