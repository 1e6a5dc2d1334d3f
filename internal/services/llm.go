package services

import (
	"context"
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMaxTokens   = 300
	DefaultTemperature = 1.0
	MaxTemperature     = 2.0
)

// Provider kinds accepted by NewProvider.
const (
	ProviderGoogle    = "google"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderMock      = "mock"
	ProviderStub      = "stub"
)

var (
	ErrUnknownProvider = errors.New("unknown AI provider")
	ErrMissingProvider = errors.New("AI provider must be specified")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrNotImplemented  = errors.New("provider is not implemented")
	ErrEmptyResponse   = errors.New("provider returned no text")
)

// GenerateRequest is one text generation call.
type GenerateRequest struct {
	Prompt string
	// SystemInstruction carries a persona block. Empty for single-shot prompts.
	SystemInstruction string
	MaxTokens         int
	Temperature       float64
}

// Provider is a language-model backend.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Warmer is implemented by providers that can check their backend before the
// first call.
type Warmer interface {
	Warmup(ctx context.Context) error
}

// SafetyPolicy is the optional content-safety configuration.
type SafetyPolicy struct {
	Rating string
	// Categories maps a backend harm category to a block threshold,
	// e.g. HARM_CATEGORY_HARASSMENT: BLOCK_MEDIUM_AND_ABOVE.
	Categories map[string]string
}

// ProviderConfig selects and configures one provider.
type ProviderConfig struct {
	Kind      string
	APIKey    string
	ModelName string
	BaseURL   string
	Safety    *SafetyPolicy
}

// ConfigError reports a provider configuration problem found at startup.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid AI configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid AI configuration (%s): %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// normalize applies defaults and clamps out-of-range values.
func (r GenerateRequest) normalize() GenerateRequest {
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	switch {
	case math.IsNaN(r.Temperature):
		r.Temperature = DefaultTemperature
	case r.Temperature < 0:
		r.Temperature = 0
	case r.Temperature > MaxTemperature:
		r.Temperature = MaxTemperature
	}
	return r
}
