package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Embedder wraps a Client with the model choice, optional truncation of the
// returned vectors and an optional instruction prefix for queries.
type Embedder struct {
	maxLength *int
	model     string
	instruct  string

	client Client
}

type EmbedderOption func(e *Embedder)

func NewEmbedder(client Client, opts ...EmbedderOption) *Embedder {
	base := &Embedder{
		model:  defaultModel,
		client: client,
	}

	for _, opt := range opts {
		opt(base)
	}

	return base
}

func WithModel(model string) EmbedderOption {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

func WithMaxLength(length int) EmbedderOption {
	return func(e *Embedder) {
		if length > 0 {
			e.maxLength = &length
		}
	}
}

// WithQueryInstruct prefixes queries with an instruction, as expected by
// instruction-tuned embedding models such as qwen3-embedding. Passages are
// embedded unchanged.
func WithQueryInstruct(task string) EmbedderOption {
	return func(e *Embedder) {
		e.instruct = strings.TrimSpace(task)
	}
}

func (e *Embedder) Model() string {
	return e.model
}

// EmbedTexts returns one vector per text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	slog.Debug("Bulk embedding texts", "count", len(texts), "model", e.model)

	resp, err := e.client.GenerateBatch(ctx, BatchRequest{
		Model:  e.model,
		Inputs: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embed %d texts: %w", len(texts), err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vecs := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		vecs[i] = e.truncate(emb)
	}

	return vecs, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	prompt := strings.TrimSpace(query)
	if e.instruct != "" {
		prompt = wrapWithInstruct(e.instruct, prompt)
		slog.Debug("embedding query with instruct", "task", e.instruct, "query", query)
	}

	resp, err := e.client.Generate(ctx, Request{
		Model:  e.model,
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return e.truncate(resp.Embedding), nil
}

func (e *Embedder) truncate(vec []float32) []float32 {
	if e.maxLength != nil && len(vec) > *e.maxLength {
		return vec[:*e.maxLength]
	}
	return vec
}

func wrapWithInstruct(task, query string) string {
	return fmt.Sprintf("Instruct: %s\nQuery:%s", task, query)
}
