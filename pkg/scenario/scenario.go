package scenario

import (
	"fmt"
	"sort"
	"strings"
)

// Scenario is the world document a game is built from.
type Scenario struct {
	Name string `yaml:"name,omitempty"`
	// WorldDescription seeds the narrator's opening description.
	WorldDescription string    `yaml:"world_description"`
	Narrator         *Narrator `yaml:"narrator,omitempty"`
	// Player is the default player character name.
	Player     string               `yaml:"player,omitempty"`
	Locations  map[string]Location  `yaml:"locations"`
	Characters map[string]Character `yaml:"characters"`
}

// DefaultWorldDescription is used when the document omits world_description.
const DefaultWorldDescription = "A default world."

// Character is the configured identity and starting state of a character.
type Character struct {
	Age           string            `yaml:"age,omitempty"`
	Height        string            `yaml:"height,omitempty"`
	Appearance    string            `yaml:"appearance,omitempty"`
	Personality   string            `yaml:"personality,omitempty"`
	Interests     string            `yaml:"interests,omitempty"`
	Habits        string            `yaml:"habits,omitempty"`
	Mannerisms    string            `yaml:"activities_and_mannerisms,omitempty"` // Older name for habits
	Backstory     string            `yaml:"backstory,omitempty"`
	Relationships map[string]string `yaml:"relationships,omitempty"` // Character name → relation
	Location      string            `yaml:"location"`                // Starting location name
	Following     string            `yaml:"following,omitempty"`     // Name of the character this one trails
}

// HabitsOrMannerisms returns habits, falling back to the older
// activities_and_mannerisms field.
func (c Character) HabitsOrMannerisms() string {
	if strings.TrimSpace(c.Habits) != "" {
		return c.Habits
	}
	return c.Mannerisms
}

// ValidationError collects every problem found in a world document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid world: %s", strings.Join(e.Problems, "; "))
}

// Validate checks cross references in the document. Problems that would leave
// the world partially built are returned as a *ValidationError. Exits that
// point at unknown locations are allowed and reported as warnings.
func (s *Scenario) Validate() (warnings []string, err error) {
	var problems []string

	if len(s.Locations) == 0 {
		problems = append(problems, "no locations defined")
	}
	if len(s.Characters) == 0 {
		problems = append(problems, "no characters defined")
	}

	for _, name := range sortedKeys(s.Locations) {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "location with empty name")
			continue
		}
		exits := s.Locations[name].AllExits()
		for _, label := range sortedKeys(exits) {
			dest := exits[label]
			if _, ok := s.Locations[dest]; !ok {
				warnings = append(warnings, fmt.Sprintf("location %q: exit %q leads to unknown location %q", name, label, dest))
			}
		}
	}

	for _, name := range sortedKeys(s.Characters) {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "character with empty name")
			continue
		}
		c := s.Characters[name]
		if c.Location == "" {
			problems = append(problems, fmt.Sprintf("character %q has no location", name))
		} else if _, ok := s.Locations[c.Location]; !ok {
			problems = append(problems, fmt.Sprintf("character %q starts in unknown location %q", name, c.Location))
		}
		if c.Following != "" {
			if c.Following == name {
				problems = append(problems, fmt.Sprintf("character %q cannot follow itself", name))
			} else if _, ok := s.Characters[c.Following]; !ok {
				problems = append(problems, fmt.Sprintf("character %q follows unknown character %q", name, c.Following))
			}
		}
		for _, other := range sortedKeys(c.Relationships) {
			if _, ok := s.Characters[other]; !ok {
				warnings = append(warnings, fmt.Sprintf("character %q has a relationship with unknown character %q", name, other))
			}
		}
	}

	if s.Player != "" {
		if _, ok := s.Characters[s.Player]; !ok {
			problems = append(problems, fmt.Sprintf("player %q is not a defined character", s.Player))
		}
	}

	if len(problems) > 0 {
		return warnings, &ValidationError{Problems: problems}
	}
	return warnings, nil
}

// Description returns the world description or the default.
func (s *Scenario) Description() string {
	if strings.TrimSpace(s.WorldDescription) == "" {
		return DefaultWorldDescription
	}
	return s.WorldDescription
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
