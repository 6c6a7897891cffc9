package embedding

import (
	"context"
)

// all-MiniLM-L6-v2 as published in the Ollama library
const defaultModel = "all-minilm"

type Request struct {
	Model string `json:"model"`

	// Prompt is the textual prompt to embed.
	Prompt string `json:"prompt"`

	// Options lists model-specific options.
	Options map[string]any `json:"options"`
}

type Response struct {
	Embedding []float32 `json:"embedding"`
}

type BatchRequest struct {
	Model   string         `json:"model"`
	Inputs  []string       `json:"input"`
	Options map[string]any `json:"options,omitempty"`
}

type BatchResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Client is an embedding backend. GenerateBatch returns one vector per input
// in input order.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error)
}
