package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/scenario"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &WorldValidator{}

	fmt.Printf("Validating %s...\n", filename)
	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	for _, w := range validator.warnings {
		fmt.Printf("warning: %s\n", w)
	}

	fmt.Println("World file is valid!")
}

// WorldValidator checks a world document more strictly than the game does
// at startup: unknown fields and sloppy names are errors here.
type WorldValidator struct {
	errors   []string
	warnings []string
}

func (v *WorldValidator) validateFile(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("world file must have a .yaml or .yml extension: %s", filepath.Base(filename))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil
	v.warnings = nil

	s, err := scenario.Decode(data, true)
	if err != nil {
		return fmt.Errorf("file %s failed strict YAML decoding: %w", filename, err)
	}

	warnings, err := s.Validate()
	v.warnings = append(v.warnings, warnings...)
	var verr *scenario.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			v.addError(p)
		}
	} else if err != nil {
		v.addError(err.Error())
	}

	v.validateNames(s)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

// validateNames rejects names that commands could never match and warns
// about locations the player would find empty.
func (v *WorldValidator) validateNames(s *scenario.Scenario) {
	for _, name := range sortedKeys(s.Locations) {
		v.validateName("location", name)
		if strings.TrimSpace(s.Locations[name].Description) == "" {
			v.warnings = append(v.warnings, fmt.Sprintf("location %q has no description", name))
		}
		for _, label := range sortedKeys(s.Locations[name].AllExits()) {
			v.validateName(fmt.Sprintf("exit of %q", name), label)
		}
	}

	for _, name := range sortedKeys(s.Characters) {
		v.validateName("character", name)
	}
}

func (v *WorldValidator) validateName(kind, name string) {
	switch {
	case strings.TrimSpace(name) == "":
		v.addError(fmt.Sprintf("%s name is blank", kind))
	case strings.TrimSpace(name) != name:
		v.addError(fmt.Sprintf("%s name %q has leading or trailing spaces", kind, name))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
