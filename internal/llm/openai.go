package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
)

const (
	DefaultLMStudioURL   = "http://localhost:1234/v1"
	DefaultLMStudioModel = "google/gemma-3-12b"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature *float32
}

// OpenAIClient sends the prompt as one user message to a chat completions
// endpoint: OpenAI itself or a local OpenAI-compatible server like LM Studio.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature *float32
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperr.NewValidation("empty prompt")
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: c.maxTokens,
	}
	if c.temperature != nil {
		req.Temperature = *c.temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("Generated answer", "model", c.model, "answer_length", len(answer))

	return answer, nil
}
