package embedding

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
)

const DefaultOpenAIModel = "text-embedding-3-small"

// OpenAIClient talks to the OpenAI embeddings endpoint or any server that
// speaks the same protocol (LM Studio, vLLM).
type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Prompt == "" {
		return nil, apperr.NewValidation("missing text to embed")
	}

	resp, err := c.GenerateBatch(ctx, BatchRequest{Model: req.Model, Inputs: []string{req.Prompt}})
	if err != nil {
		return nil, err
	}

	return &Response{Embedding: resp.Embeddings[0]}, nil
}

func (c *OpenAIClient) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if len(req.Inputs) == 0 {
		return nil, apperr.NewValidation("missing inputs to embed")
	}
	if req.Model == "" {
		return nil, apperr.NewValidation("missing model name")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: req.Inputs,
		Model: openai.EmbeddingModel(req.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(req.Inputs) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(resp.Data), len(req.Inputs))
	}

	out := make([][]float32, len(req.Inputs))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("openai returned embedding index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}

	return &BatchResponse{Embeddings: out}, nil
}
