package embedding

import (
	"fmt"
	"os"
)

type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

type Config struct {
	Provider  Provider `yaml:"provider" schema:"enum=ollama|openai,default=ollama"`
	Model     string   `yaml:"model"`
	BaseURL   string   `yaml:"base_url"`
	MaxLength int      `yaml:"max_length" schema:"min=0" description:"Truncate vectors to this many dimensions, 0 keeps all"`
	Instruct  string   `yaml:"query_instruct"`
	KeepAlive string   `yaml:"keep_alive"`
}

// New builds an Embedder for the configured provider. The OpenAI key is read
// from OPENAI_API_KEY.
func New(cfg Config) (*Embedder, error) {
	var client Client

	switch cfg.Provider {
	case ProviderOllama, "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		var opts []OllamaConfig
		if cfg.KeepAlive != "" {
			opts = append(opts, WithKeepAlive(cfg.KeepAlive))
		}
		oc, err := NewOllamaClient(baseURL, opts...)
		if err != nil {
			return nil, fmt.Errorf("ollama client: %w", err)
		}
		client = oc

	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" && cfg.BaseURL == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		client = NewOpenAIClient(apiKey, cfg.BaseURL)
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	return NewEmbedder(client,
		WithModel(cfg.Model),
		WithMaxLength(cfg.MaxLength),
		WithQueryInstruct(cfg.Instruct),
	), nil
}
