package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	pgpool "github.com/DjordjeVuckovic/rag-eval/internal/pg"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
)

const DefaultCollection = "rag_eval"

// Store keeps passages in the passages table, scoped by collection, and ranks
// them by pgvector cosine distance.
type Store struct {
	embedder   vectorstore.Embedder
	db         *pgxpool.Pool
	pool       *pgpool.ConnectionPool
	collection string
	ownsPool   bool
}

type StoreOption func(s *Store)

func WithCollection(name string) StoreOption {
	return func(s *Store) {
		if name != "" {
			s.collection = name
		}
	}
}

// WithOwnedPool makes Close release the connection pool.
func WithOwnedPool() StoreOption {
	return func(s *Store) {
		s.ownsPool = true
	}
}

func NewStore(pool *pgpool.ConnectionPool, embedder vectorstore.Embedder, opts ...StoreOption) *Store {
	s := &Store{
		embedder:   embedder,
		db:         pool.GetConn(),
		pool:       pool,
		collection: DefaultCollection,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
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

	cmd := `
		INSERT INTO passages (collection, id, content, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, id) DO UPDATE
		SET content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding;
	`

	batch := &pgx.Batch{}
	for i, d := range docs {
		metadataJSON, err := json.Marshal(d.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for passage %q: %w", d.ID, err)
		}
		batch.Queue(cmd, s.collection, d.ID, d.Text, metadataJSON, pgvector.NewVector(vecs[i]))
	}

	br := s.db.SendBatch(ctx, batch)
	for _, d := range docs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to upsert passage %q: %w", d.ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	slog.Info("Stored passages in postgres", "count", len(docs), "collection", s.collection)
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

	cmd := `
		SELECT id,
			   content,
			   1 - (embedding <=> $1) AS score
		FROM passages
		WHERE collection = $2
		ORDER BY embedding <=> $1, id
		LIMIT $3;
	`

	rows, err := s.db.Query(ctx, cmd, pgvector.NewVector(vec), s.collection, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	hits := make([]vectorstore.Hit, 0, topK)
	for rows.Next() {
		var h vectorstore.Hit
		if err := rows.Scan(&h.ID, &h.Text, &h.Score); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		slog.Debug("Vector search hit", "id", h.ID, "score", h.Score)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hits, nil
}

// Reset removes every passage of the collection.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DELETE FROM passages WHERE collection = $1`, s.collection)
	if err != nil {
		return fmt.Errorf("failed to reset collection %q: %w", s.collection, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.ownsPool {
		s.pool.Close()
	}
	return nil
}
