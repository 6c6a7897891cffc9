package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"

	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
)

// Store keeps passages in a dense_vector index and answers queries with
// approximate kNN over cosine similarity. The index is created on the first
// Add, once the vector dimension is known.
type Store struct {
	client    *elasticsearch.Client
	indexName string
	embedder  vectorstore.Embedder

	ensureOnce sync.Once
	ensureErr  error
}

func NewStore(config ClientConfig, embedder vectorstore.Embedder) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexName := config.IndexName
	if indexName == "" {
		indexName = DefaultIndex
	}

	return &Store{
		client:    client,
		indexName: indexName,
		embedder:  embedder,
	}, nil
}

func (s *Store) Add(ctx context.Context, docs []vectorstore.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	vecs, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed passages: %w", err)
	}
	if len(vecs) != len(docs) {
		return fmt.Errorf("expected %d vectors, got %d", len(docs), len(vecs))
	}

	s.ensureOnce.Do(func() {
		s.ensureErr = s.EnsureIndex(ctx, len(vecs[0]))
	})
	if s.ensureErr != nil {
		return s.ensureErr
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
		Refresh:       "wait_for",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64

	for i, d := range docs {
		body, err := json.Marshal(Document{
			ID:       d.ID,
			Content:  d.Text,
			Source:   d.Metadata["source"],
			Metadata: d.Metadata,
			Vector:   vecs[i],
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to marshal passage", "error", err, "id", d.ID)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: d.ID,
			Body:       bytes.NewReader(body),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				successful.Add(1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add passage to bulk indexer", "error", err, "id", d.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", len(docs),
		"index", s.indexName)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d passages", n, len(docs))
	}
	return nil
}

func (s *Store) Query(ctx context.Context, text string, topK int) ([]vectorstore.Hit, error) {
	if topK <= 0 {
		return nil, nil
	}

	vec, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	body, err := json.Marshal(searchRequest{
		Knn: knnQuery{
			Field:         "embedding",
			QueryVector:   vec,
			K:             topK,
			NumCandidates: max(100, topK*10),
		},
		Size:   topK,
		Source: []string{"id", "content"},
	})
	if err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.indexName),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute knn search: %w", err)
	}
	defer res.Body.Close()

	// The index is created on the first Add.
	if res.StatusCode == http.StatusNotFound {
		return []vectorstore.Hit{}, nil
	}
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("knn search failed: %s: %s", res.Status(), msg)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]vectorstore.Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id := h.Source.ID
		if id == "" {
			id = h.ID
		}
		hits = append(hits, vectorstore.Hit{ID: id, Text: h.Source.Content, Score: h.Score})
	}

	return hits, nil
}

// EnsureIndex creates the passage index with a dims-sized dense_vector field
// unless it already exists.
func (s *Store) EnsureIndex(ctx context.Context, dims int) error {
	existsRes, err := s.client.Indices.Exists([]string{s.indexName}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	existsRes.Body.Close()

	if existsRes.StatusCode == http.StatusOK {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}
	if existsRes.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status checking index %q: %s", s.indexName, existsRes.Status())
	}

	mapping, err := json.Marshal(indexMapping(dims))
	if err != nil {
		return err
	}

	createRes, err := s.client.Indices.Create(
		s.indexName,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		msg, _ := io.ReadAll(createRes.Body)
		return fmt.Errorf("index creation failed: %s: %s", createRes.Status(), msg)
	}

	slog.Info("Index created successfully", "index", s.indexName, "dims", dims)
	return nil
}

// Reset drops the passage index.
func (s *Store) Reset(ctx context.Context) error {
	res, err := s.client.Indices.Delete([]string{s.indexName}, s.client.Indices.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("index deletion failed: %s", res.Status())
	}

	s.ensureOnce = sync.Once{}
	s.ensureErr = nil
	return nil
}

func (s *Store) Close() error {
	return nil
}
