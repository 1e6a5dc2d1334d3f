package actor

import (
	"errors"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/chat"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
)

// MemoryTypeInteraction marks a memory produced by summarizing a finished
// interaction.
const MemoryTypeInteraction = "interaction"

var ErrEmptyMemory = errors.New("memory entry has no content")

// MemoryEntry is one long-term memory record.
type MemoryEntry struct {
	Type    string `yaml:"type" json:"type"`
	Content string `yaml:"content" json:"content"`
}

// Traits is the static persona of a character.
type Traits struct {
	Age           string
	Height        string
	Appearance    string
	Personality   string
	Interests     string
	Habits        string
	Backstory     string
	Relationships map[string]string // Character name → relation
}

// Character is a person in the world, player or not.
//
// The transcript holds the open interaction and is empty whenever no
// interaction is open. Memory only grows, except when a saved game replaces it
// wholesale.
type Character struct {
	Name string
	Traits
	Location  string // Location name
	Following string // Name of the character this one trails

	transcript []chat.ChatMessage
	memory     []MemoryEntry
}

// NewCharacter builds a character from its world document entry.
func NewCharacter(name string, spec scenario.Character) *Character {
	var rel map[string]string
	if len(spec.Relationships) > 0 {
		rel = make(map[string]string, len(spec.Relationships))
		for k, v := range spec.Relationships {
			rel[k] = v
		}
	}

	return &Character{
		Name: name,
		Traits: Traits{
			Age:           spec.Age,
			Height:        spec.Height,
			Appearance:    spec.Appearance,
			Personality:   spec.Personality,
			Interests:     spec.Interests,
			Habits:        spec.HabitsOrMannerisms(),
			Backstory:     spec.Backstory,
			Relationships: rel,
		},
		Location:  spec.Location,
		Following: spec.Following,
	}
}

// RelationTo returns how this character relates to other, if declared.
func (c *Character) RelationTo(other string) (string, bool) {
	rel, ok := c.Relationships[other]
	return rel, ok && strings.TrimSpace(rel) != ""
}

// SharesLocationWith reports whether both characters stand in the same place.
func (c *Character) SharesLocationWith(other *Character) bool {
	return other != nil && c.Location != "" && c.Location == other.Location
}

// AppendTurn adds one entry to the open interaction transcript.
func (c *Character) AppendTurn(role, content string) {
	c.transcript = append(c.transcript, chat.ChatMessage{Role: role, Content: content})
}

// Transcript returns a copy of the open interaction transcript.
func (c *Character) Transcript() []chat.ChatMessage {
	out := make([]chat.ChatMessage, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// InInteraction reports whether an interaction transcript is open.
func (c *Character) InInteraction() bool {
	return len(c.transcript) > 0
}

// DrainTranscript empties the transcript and returns what it held.
func (c *Character) DrainTranscript() []chat.ChatMessage {
	out := c.transcript
	c.transcript = nil
	return out
}

// Remember appends a memory entry.
func (c *Character) Remember(entry MemoryEntry) error {
	if strings.TrimSpace(entry.Content) == "" {
		return ErrEmptyMemory
	}
	c.memory = append(c.memory, entry)
	return nil
}

// Memory returns a copy of every memory entry, oldest first.
func (c *Character) Memory() []MemoryEntry {
	out := make([]MemoryEntry, len(c.memory))
	copy(out, c.memory)
	return out
}

// RecentMemory returns a copy of at most the last n entries, oldest first.
func (c *Character) RecentMemory(n int) []MemoryEntry {
	return LastN(c.memory, n)
}

// RestoreMemory replaces all memory. Only used when loading a saved game.
func (c *Character) RestoreMemory(entries []MemoryEntry) {
	c.memory = make([]MemoryEntry, len(entries))
	copy(c.memory, entries)
}

// LastN returns a copy of at most the last n entries of memory, in order.
func LastN(memory []MemoryEntry, n int) []MemoryEntry {
	if n <= 0 || len(memory) == 0 {
		return []MemoryEntry{}
	}
	if len(memory) > n {
		memory = memory[len(memory)-n:]
	}
	out := make([]MemoryEntry, len(memory))
	copy(out, memory)
	return out
}
