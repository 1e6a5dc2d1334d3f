package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/textfilter"
)

// AIService is the boundary the game talks to. Its calls never fail: any
// provider error or panic is logged and turned into "", and callers apply
// their own fallback.
type AIService struct {
	provider Provider
	policy   *textfilter.Policy
	logger   *slog.Logger
}

// NewAIService wraps provider. policy may be nil.
func NewAIService(provider Provider, policy *textfilter.Policy, logger *slog.Logger) *AIService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AIService{provider: provider, policy: policy, logger: logger}
}

// NewAIServiceFromConfig builds the provider named in cfg and wraps it.
func NewAIServiceFromConfig(ctx context.Context, cfg ProviderConfig, logger *slog.Logger) (*AIService, error) {
	if strings.TrimSpace(cfg.Kind) == "" {
		return nil, &ConfigError{Field: "provider", Err: ErrMissingProvider}
	}
	provider, err := NewProvider(ctx, cfg.Kind, cfg, logger)
	if err != nil {
		return nil, err
	}

	var policy *textfilter.Policy
	if cfg.Safety != nil {
		policy = textfilter.NewPolicy(cfg.Safety.Rating)
	}
	return NewAIService(provider, policy, logger), nil
}

// Generate runs a single-shot prompt.
func (s *AIService) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) string {
	return s.generate(ctx, GenerateRequest{Prompt: prompt, MaxTokens: maxTokens, Temperature: temperature})
}

// GenerateWithPersona runs prompt with persona as the system instruction.
func (s *AIService) GenerateWithPersona(ctx context.Context, persona, prompt string, maxTokens int, temperature float64) string {
	return s.generate(ctx, GenerateRequest{
		Prompt:            prompt,
		SystemInstruction: persona,
		MaxTokens:         maxTokens,
		Temperature:       temperature,
	})
}

// SwitchProvider replaces the active provider. A nil provider is ignored.
func (s *AIService) SwitchProvider(p Provider) {
	if p == nil {
		s.logger.Warn("Ignoring switch to nil AI provider")
		return
	}
	s.provider = p
	s.logger.Info("AI provider switched", "provider", fmt.Sprintf("%T", p))
}

// Provider returns the active provider.
func (s *AIService) Provider() Provider {
	return s.provider
}

// Policy returns the content policy, which may be nil.
func (s *AIService) Policy() *textfilter.Policy {
	return s.policy
}

func (s *AIService) generate(ctx context.Context, req GenerateRequest) (text string) {
	if s.provider == nil {
		s.logger.Error("No AI provider configured")
		return ""
	}
	req = req.normalize()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("AI provider panicked", "panic", r)
			text = ""
		}
	}()

	out, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.logger.Error("AI generation failed",
			"error", err,
			"max_tokens", req.MaxTokens,
			"temperature", req.Temperature,
			"prompt_length", len(req.Prompt))
		return ""
	}
	out = strings.TrimSpace(out)
	if out == "" {
		s.logger.Warn("AI provider returned empty text")
		return ""
	}
	return s.policy.Apply(out)
}
