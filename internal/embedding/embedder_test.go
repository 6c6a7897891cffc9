package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	dim      int
	requests []Request
	batches  []BatchRequest
	err      error
}

func (f *fakeClient) Generate(_ context.Context, req Request) (*Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &Response{Embedding: make([]float32, f.dim)}, nil
}

func (f *fakeClient) GenerateBatch(_ context.Context, req BatchRequest) (*BatchResponse, error) {
	f.batches = append(f.batches, req)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(req.Inputs))
	for i := range out {
		out[i] = make([]float32, f.dim)
		out[i][0] = float32(i)
	}
	return &BatchResponse{Embeddings: out}, nil
}

func TestEmbedder_EmbedTexts(t *testing.T) {
	client := &fakeClient{dim: 8}
	e := NewEmbedder(client, WithMaxLength(4))

	vecs, err := e.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	for i, v := range vecs {
		assert.Len(t, v, 4)
		assert.Equal(t, float32(i), v[0])
	}
	require.Len(t, client.batches, 1)
	assert.Equal(t, defaultModel, client.batches[0].Model)
}

func TestEmbedder_EmbedTextsEmpty(t *testing.T) {
	client := &fakeClient{dim: 4}
	vecs, err := NewEmbedder(client).EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
	assert.Empty(t, client.batches)
}

func TestEmbedder_EmbedQuery(t *testing.T) {
	t.Run("plain query", func(t *testing.T) {
		client := &fakeClient{dim: 4}
		e := NewEmbedder(client, WithModel("nomic-embed-text"))

		vec, err := e.EmbedQuery(context.Background(), "  capital of France?  ")
		require.NoError(t, err)
		assert.Len(t, vec, 4)

		require.Len(t, client.requests, 1)
		assert.Equal(t, "nomic-embed-text", client.requests[0].Model)
		assert.Equal(t, "capital of France?", client.requests[0].Prompt)
	})

	t.Run("with instruct", func(t *testing.T) {
		client := &fakeClient{dim: 4}
		e := NewEmbedder(client, WithQueryInstruct("Retrieve passages that answer the question"))

		_, err := e.EmbedQuery(context.Background(), "capital of France?")
		require.NoError(t, err)
		assert.Equal(t,
			"Instruct: Retrieve passages that answer the question\nQuery:capital of France?",
			client.requests[0].Prompt)
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		e := NewEmbedder(&fakeClient{err: boom})

		_, err := e.EmbedQuery(context.Background(), "q")
		assert.ErrorIs(t, err, boom)
	})
}

func TestWithModel_EmptyKeepsDefault(t *testing.T) {
	e := NewEmbedder(&fakeClient{}, WithModel(""), WithMaxLength(0))
	assert.Equal(t, defaultModel, e.Model())
	assert.Nil(t, e.maxLength)
}
