package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider uses the chat completions API. BaseURL lets it talk to any
// OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client    *openai.Client
	modelName string
	logger    *slog.Logger
}

func NewOpenAIProvider(cfg ProviderConfig, logger *slog.Logger) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.ModelName
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(config),
		modelName: model,
		logger:    logger,
	}
}

func (o *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	// go-openai omits a zero temperature, which the server reads as 1.
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	o.logger.Debug("Making OpenAI chat request", "model", o.modelName, "message_count", len(messages))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
