package chat

import (
	"fmt"
	"strings"
)

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // NPC
	ChatRoleSystem = "system"    // Narrator or system
)

// MaxMessageLength bounds a single player utterance.
const MaxMessageLength = 1000

// speakerPrefixLimit is how far into a line a colon may appear and still be
// read as a "Speaker:" prefix.
const speakerPrefixLimit = 50

// ChatMessage is a single entry in an interaction transcript.
type ChatMessage struct {
	Role    string `json:"role" yaml:"role"` // "user", "assistant", "system"
	Content string `json:"content" yaml:"content"`
}

// ValidateUtterance checks a free-text line typed by the player during an
// interaction.
func ValidateUtterance(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(message) > MaxMessageLength {
		return fmt.Errorf("message exceeds maximum length of %d characters", MaxMessageLength)
	}
	return nil
}

// FormatWithSpeaker prefixes message with "name: " unless the message already
// starts with a speaker prefix.
func FormatWithSpeaker(message, name string) string {
	if idx := strings.Index(message, ":"); idx > 0 && idx <= speakerPrefixLimit {
		return message
	}
	return name + ": " + message
}

// Flatten renders messages as a "role: content" log, one line per message.
func Flatten(messages []ChatMessage) string {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s", m.Role, m.Content)
	}
	return sb.String()
}
