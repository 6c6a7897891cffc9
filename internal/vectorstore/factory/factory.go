package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/rag-eval/db"
	pgpool "github.com/DjordjeVuckovic/rag-eval/internal/pg"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore/es"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore/in_mem"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore/pg"
)

// NewStore creates the configured vector store around embedder. The caller
// owns the returned store and must Close it.
func NewStore(ctx context.Context, cfg StoreConfig, embedder vectorstore.Embedder) (vectorstore.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case vectorstore.InMem:
		return in_mem.NewStore(embedder), nil

	case vectorstore.PG:
		pool, err := pgpool.NewConnectionPool(ctx, pgpool.PoolConfig{ConnStr: cfg.Pg.Connection})
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		if err := pgpool.Migrate(ctx, pool, db.Migrations); err != nil {
			pool.Close()
			return nil, err
		}

		store := pg.NewStore(pool, embedder, pg.WithCollection(cfg.Pg.Collection), pg.WithOwnedPool())
		if cfg.Pg.ResetOnOpen() {
			if err := store.Reset(ctx); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		return store, nil

	case vectorstore.ES:
		store, err := es.NewStore(*cfg.Es, embedder)
		if err != nil {
			return nil, err
		}
		if cfg.Es.ResetOnOpen() {
			if err := store.Reset(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil

	default:
		return nil, fmt.Errorf(string(vectorstore.ErrUnsupportedStore), cfg.Type)
	}
}
