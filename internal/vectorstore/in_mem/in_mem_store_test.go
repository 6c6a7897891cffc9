package in_mem

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
)

// keywordEmbedder maps text onto a fixed vocabulary so similarity is predictable.
type keywordEmbedder struct {
	vocab []string
	err   error
}

func (k keywordEmbedder) embed(text string) []float32 {
	lower := strings.ToLower(text)
	vec := make([]float32, len(k.vocab))
	for i, w := range k.vocab {
		if strings.Contains(lower, w) {
			vec[i] = 1
		}
	}
	return vec
}

func (k keywordEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if k.err != nil {
		return nil, k.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = k.embed(t)
	}
	return out, nil
}

func (k keywordEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if k.err != nil {
		return nil, k.err
	}
	return k.embed(text), nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(keywordEmbedder{vocab: []string{"paris", "france", "berlin", "germany", "capital"}})
	err := s.Add(context.Background(), []vectorstore.Document{
		{ID: "p1", Text: "Paris is the capital of France."},
		{ID: "p2", Text: "Berlin is the capital of Germany."},
		{ID: "p3", Text: "France borders Germany."},
	})
	require.NoError(t, err)
	return s
}

func TestStore_Query(t *testing.T) {
	s := newTestStore(t)

	hits, err := s.Query(context.Background(), "What is the capital of France?", 5)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "p1", hits[0].ID)
	assert.Equal(t, "Paris is the capital of France.", hits[0].Text)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestStore_QueryTopK(t *testing.T) {
	s := newTestStore(t)

	hits, err := s.Query(context.Background(), "capital of Germany", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "p2", hits[0].ID)

	hits, err = s.Query(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStore_AddReplacesExistingID(t *testing.T) {
	s := newTestStore(t)

	err := s.Add(context.Background(), []vectorstore.Document{{ID: "p3", Text: "Berlin, Germany"}})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	hits, err := s.Query(context.Background(), "berlin germany", 3)
	require.NoError(t, err)

	ids := vectorstore.IDs(hits)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, ids)
	assert.Equal(t, "p3", ids[0])
}

func TestStore_EmbedderError(t *testing.T) {
	boom := errors.New("embedding backend down")
	s := NewStore(keywordEmbedder{err: boom})

	err := s.Add(context.Background(), []vectorstore.Document{{ID: "p1", Text: "x"}})
	assert.ErrorIs(t, err, boom)

	_, err = s.Query(context.Background(), "x", 5)
	assert.ErrorIs(t, err, boom)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 1}))
}
