package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()
	log := testLogger()

	tests := []struct {
		name    string
		kind    string
		cfg     ProviderConfig
		want    Provider
		wantErr error
	}{
		{name: "google", kind: "google", cfg: ProviderConfig{APIKey: "k"}, want: &GeminiProvider{}},
		{name: "google is case-insensitive", kind: " GOOGLE ", cfg: ProviderConfig{APIKey: "k"}, want: &GeminiProvider{}},
		{name: "google needs a key", kind: "google", wantErr: ErrMissingAPIKey},
		{name: "openai", kind: "OpenAI", cfg: ProviderConfig{APIKey: "k"}, want: &OpenAIProvider{}},
		{name: "openai needs a key", kind: "openai", wantErr: ErrMissingAPIKey},
		{name: "anthropic", kind: "anthropic", cfg: ProviderConfig{APIKey: "k"}, want: &AnthropicProvider{}},
		{name: "ollama", kind: "ollama", want: &OllamaProvider{}},
		{name: "mock", kind: "mock", want: &MockProvider{}},
		{name: "stub", kind: "stub", want: &UnimplementedProvider{}},
		{name: "unknown", kind: "watson", wantErr: ErrUnknownProvider},
		{name: "empty", kind: "", wantErr: ErrMissingProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(ctx, tt.kind, tt.cfg, log)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var cfgErr *ConfigError
				assert.ErrorAs(t, err, &cfgErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestNewProvider_Defaults(t *testing.T) {
	p, err := NewProvider(context.Background(), "ollama", ProviderConfig{}, nil)
	require.NoError(t, err)
	ollama := p.(*OllamaProvider)
	assert.Equal(t, DefaultOllamaURL, ollama.baseURL)
	assert.Equal(t, DefaultOllamaModel, ollama.modelName)

	p, err = NewProvider(context.Background(), "anthropic", ProviderConfig{APIKey: "k", BaseURL: "http://x/"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://x", p.(*AnthropicProvider).baseURL)
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Field: "provider", Err: ErrUnknownProvider}
	assert.Equal(t, "invalid AI configuration (provider): unknown AI provider", err.Error())
	assert.Equal(t, "invalid AI configuration: unknown AI provider", (&ConfigError{Err: ErrUnknownProvider}).Error())
}

func TestUnimplementedProvider(t *testing.T) {
	_, err := NewUnimplementedProvider("gpt-x").Generate(context.Background(), GenerateRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrNotImplemented)
}
