package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/textfilter"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

var geminiHarmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// GeminiProvider generates text with the Gemini API.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
	safety    []*genai.SafetySetting
	logger    *slog.Logger
}

// NewGeminiProvider creates the genai client. BaseURL, when set, overrides the
// API endpoint.
func NewGeminiProvider(ctx context.Context, cfg ProviderConfig, logger *slog.Logger) (*GeminiProvider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.ModelName
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiProvider{
		client:    client,
		modelName: model,
		safety:    geminiSafetySettings(cfg.Safety),
		logger:    logger,
	}, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
		SafetySettings:  g.safety,
		ThinkingConfig:  geminiThinking(g.modelName),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	g.logger.Debug("Making Gemini request",
		"model", g.modelName,
		"max_tokens", req.MaxTokens,
		"has_persona", req.SystemInstruction != "")

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	// Blocked prompts come back with no candidates.
	if len(res.Candidates) == 0 {
		if res.PromptFeedback != nil {
			g.logger.Warn("Gemini blocked the prompt", "reason", res.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}
	text := res.Text()
	if text == "" {
		g.logger.Warn("Gemini returned no text", "finish_reason", res.Candidates[0].FinishReason)
		return "", ErrEmptyResponse
	}
	return text, nil
}

// geminiThinking turns thinking off for 2.5 Flash models, whose thinking
// tokens count against MaxOutputTokens. Other models keep their default.
func geminiThinking(model string) *genai.ThinkingConfig {
	if !strings.Contains(model, "gemini-2.5-flash") {
		return nil
	}
	return &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
}

// geminiSafetySettings turns the policy into genai settings. Explicit
// categories win; otherwise thresholds follow the content rating.
func geminiSafetySettings(policy *SafetyPolicy) []*genai.SafetySetting {
	if policy == nil {
		return nil
	}

	if len(policy.Categories) > 0 {
		keys := make([]string, 0, len(policy.Categories))
		for k := range policy.Categories {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		settings := make([]*genai.SafetySetting, 0, len(keys))
		for _, k := range keys {
			settings = append(settings, &genai.SafetySetting{
				Category:  genai.HarmCategory(strings.ToUpper(k)),
				Threshold: genai.HarmBlockThreshold(strings.ToUpper(policy.Categories[k])),
			})
		}
		return settings
	}

	var threshold genai.HarmBlockThreshold
	switch textfilter.NormalizeRating(policy.Rating) {
	case textfilter.RatingG, textfilter.RatingPG:
		threshold = genai.HarmBlockThresholdBlockLowAndAbove
	case textfilter.RatingPG13:
		threshold = genai.HarmBlockThresholdBlockMediumAndAbove
	case textfilter.RatingR:
		threshold = genai.HarmBlockThresholdBlockOnlyHigh
	default:
		return nil
	}

	settings := make([]*genai.SafetySetting, 0, len(geminiHarmCategories))
	for _, c := range geminiHarmCategories {
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: threshold})
	}
	return settings
}
