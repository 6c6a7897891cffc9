package llm

import (
	"context"
	"fmt"
	"os"
)

// Generator answers a single prompt. Implementations make exactly one call
// per Generate and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Provider string

const (
	ProviderLMStudio  Provider = "lmstudio"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

type Config struct {
	Provider    Provider `yaml:"provider" schema:"enum=lmstudio|openai|anthropic,default=lmstudio"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float32 `yaml:"temperature"`
}

// New builds the Generator for cfg. API keys come from OPENAI_API_KEY and
// ANTHROPIC_API_KEY; LM Studio needs none.
func New(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case ProviderLMStudio, "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultLMStudioURL
		}
		model := cfg.Model
		if model == "" {
			model = DefaultLMStudioModel
		}
		return NewOpenAIClient(OpenAIConfig{
			APIKey:      "lm-studio",
			BaseURL:     baseURL,
			Model:       model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})

	case ProviderOpenAI:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})

	case ProviderAnthropic:
		return NewAnthropicClient(AnthropicConfig{
			APIKey:      os.Getenv("ANTHROPIC_API_KEY"),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
