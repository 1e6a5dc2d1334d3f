package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jwebster45206/wayfarer/pkg/chat"
)

const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llama3.2"
)

// OllamaProvider talks to a local Ollama server.
type OllamaProvider struct {
	baseURL    string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOllamaProvider(cfg ProviderConfig, logger *slog.Logger) *OllamaProvider {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	model := cfg.ModelName
	if model == "" {
		model = DefaultOllamaModel
	}
	return &OllamaProvider{
		baseURL:   baseURL,
		modelName: model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

type ollamaChatRequest struct {
	Model    string             `json:"model"`
	Messages []chat.ChatMessage `json:"messages"`
	Stream   bool               `json:"stream"`
	Options  ollamaOptions      `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

func (s *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	messages := make([]chat.ChatMessage, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, chat.ChatMessage{Role: chat.ChatRoleSystem, Content: req.SystemInstruction})
	}
	messages = append(messages, chat.ChatMessage{Role: chat.ChatRoleUser, Content: req.Prompt})

	jsonBody, err := json.Marshal(ollamaChatRequest{
		Model:    s.modelName,
		Messages: messages,
		Options:  ollamaOptions{NumPredict: req.MaxTokens, Temperature: req.Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := s.baseURL + "/api/chat"
	s.logger.Debug("Making Ollama chat request", "url", url, "model", s.modelName, "message_count", len(messages))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Ollama API returned error",
			"status_code", resp.StatusCode,
			"response_body", body.String())
		return "", fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var ollamaResp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body.Bytes(), &ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return ollamaResp.Message.Content, nil
}

// Warmup checks that the server answers and the model has been pulled.
func (s *OllamaProvider) Warmup(ctx context.Context) error {
	ready, err := s.isModelReady(ctx)
	if err != nil {
		return fmt.Errorf("ollama is not reachable: %w", err)
	}
	if !ready {
		return fmt.Errorf("ollama model %q is not pulled", s.modelName)
	}
	return nil
}

func (s *OllamaProvider) isModelReady(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var tagsResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, model := range tagsResp.Models {
		// Ollama reports "llama3.2:latest" for "llama3.2".
		if model.Name == s.modelName || strings.TrimSuffix(model.Name, ":latest") == s.modelName {
			return true, nil
		}
	}
	return false, nil
}
