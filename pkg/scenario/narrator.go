package scenario

import "strings"

// Narrator defines the voice used when describing the world.
type Narrator struct {
	Name    string   `yaml:"name"`
	Prompts []string `yaml:"prompts"` // Style instructions
}

// GetPromptsAsString returns all narrator prompts as a bulleted list.
func (n *Narrator) GetPromptsAsString() string {
	if n == nil || len(n.Prompts) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, prompt := range n.Prompts {
		sb.WriteString("- " + prompt + "\n")
	}
	return sb.String()
}
