package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrEmptyDocument = errors.New("world document is empty")

// Decode parses a YAML world document. With strict set, unknown fields are
// errors.
func Decode(data []byte, strict bool) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to parse world document: %w", err)
	}
	return &s, nil
}
