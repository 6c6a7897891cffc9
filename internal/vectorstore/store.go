package vectorstore

import (
	"context"
)

type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Hit is one ranked query result, best match first.
type Hit struct {
	ID    string
	Text  string
	Score float64
}

// Embedder turns text into vectors for storage and for querying.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Store is a nearest-neighbour passage store. Query returns at most topK hits
// with unique IDs ranked by decreasing similarity.
type Store interface {
	Add(ctx context.Context, docs []Document) error
	Query(ctx context.Context, text string, topK int) ([]Hit, error)
	Close() error
}

type Type string

const (
	InMem Type = "in_mem"
	PG    Type = "pg"
	ES    Type = "es"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported vector store type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}

func IDs(hits []Hit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return ids
}

func Texts(hits []Hit) []string {
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	return texts
}

// SourceMetadata is the metadata attached to every seeded passage.
func SourceMetadata(id string) map[string]string {
	return map[string]string{"source": id}
}
