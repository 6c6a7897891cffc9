package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
	"github.com/DjordjeVuckovic/rag-eval/internal/embedding"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
	"github.com/DjordjeVuckovic/rag-eval/internal/llm"
)

const DefaultTopK = 5

func LoadFromFile(path string) (*RunConfig, error) {
	c, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Parse(data []byte) (*RunConfig, error) {
	c, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadFile decodes a config file without validating it, so callers can
// override fields first.
func ReadFile(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config: %w", err)
	}
	return Decode(data)
}

func Decode(data []byte) (*RunConfig, error) {
	var c RunConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, apperr.NewValidationWrap("parse run config YAML", err)
	}
	return &c, nil
}

var validEmbeddingProviders = map[embedding.Provider]bool{
	embedding.ProviderOllama: true,
	embedding.ProviderOpenAI: true,
}

var validLLMProviders = map[llm.Provider]bool{
	llm.ProviderLMStudio:  true,
	llm.ProviderOpenAI:    true,
	llm.ProviderAnthropic: true,
}

// Validate checks required fields and fills defaults. It is safe to call
// again after flags override loaded values.
func (c *RunConfig) Validate() error {
	c.applyDefaults()

	if c.Dataset == "" {
		return apperr.NewValidation("run config has no dataset")
	}
	if c.Retrieval.TopK < 0 {
		return apperr.NewValidationf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	switch c.Run.OnError {
	case OnErrorAbort, OnErrorRecord:
	default:
		return apperr.NewValidationf("run.on_error must be %q or %q, got %q", OnErrorAbort, OnErrorRecord, c.Run.OnError)
	}
	if !validEmbeddingProviders[c.Embedding.Provider] {
		return apperr.NewValidationf("unsupported embedding provider %q", c.Embedding.Provider)
	}
	if c.Embedding.MaxLength < 0 {
		return apperr.NewValidationf("embedding.max_length must not be negative, got %d", c.Embedding.MaxLength)
	}
	if !validLLMProviders[c.LLM.Provider] {
		return apperr.NewValidationf("unsupported llm provider %q", c.LLM.Provider)
	}
	if c.LLM.MaxTokens < 0 {
		return apperr.NewValidationf("llm.max_tokens must not be negative, got %d", c.LLM.MaxTokens)
	}
	if err := c.VectorStore.Validate(); err != nil {
		return apperr.NewValidationWrap("invalid vector_store", err)
	}
	if c.ResultsDB != nil && c.ResultsDB.Connection == "" {
		return apperr.NewValidation("results_db has no connection")
	}
	return nil
}

func (c *RunConfig) applyDefaults() {
	if c.Output == "" {
		c.Output = results.DefaultPath
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = DefaultTopK
	}
	if c.Run.OnError == "" {
		c.Run.OnError = OnErrorAbort
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = embedding.ProviderOllama
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = llm.ProviderLMStudio
	}
}
