package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NewProvider builds the provider named by kind. The kind is matched
// case-insensitively. This is the only place a provider error is returned to
// the caller; it runs once at startup.
func NewProvider(ctx context.Context, kind string, cfg ProviderConfig, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ProviderGoogle:
		if cfg.APIKey == "" {
			return nil, &ConfigError{Field: "api_key", Err: ErrMissingAPIKey}
		}
		p, err := NewGeminiProvider(ctx, cfg, logger)
		if err != nil {
			return nil, &ConfigError{Field: "provider", Err: err}
		}
		return p, nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, &ConfigError{Field: "api_key", Err: ErrMissingAPIKey}
		}
		return NewOpenAIProvider(cfg, logger), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, &ConfigError{Field: "api_key", Err: ErrMissingAPIKey}
		}
		return NewAnthropicProvider(cfg, logger), nil
	case ProviderOllama:
		return NewOllamaProvider(cfg, logger), nil
	case ProviderMock:
		return NewMockProvider(), nil
	case ProviderStub:
		return NewUnimplementedProvider(cfg.ModelName), nil
	case "":
		return nil, &ConfigError{Field: "provider", Err: ErrMissingProvider}
	default:
		return nil, &ConfigError{Field: "provider", Err: fmt.Errorf("%w: %q", ErrUnknownProvider, kind)}
	}
}
