package results

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgpool "github.com/DjordjeVuckovic/rag-eval/internal/pg"
	pgtesting "github.com/DjordjeVuckovic/rag-eval/pkg/testing"
)

func TestPgStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	container := pgtesting.NewPGContainerWithCleanup(ctx, t)

	pool, err := pgpool.NewConnectionPool(ctx, pgpool.PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	defer pool.Close()

	store := NewPgStore(pool, uuid.New())

	_, err = store.LatestRun(ctx)
	assert.ErrorIs(t, err, ErrNoRuns)

	empty, err := NewLatestRunSource(store).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Records)

	records := sampleRecords()

	t.Run("snapshot replaces previous rows", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, records[:1]))
		require.NoError(t, store.Write(ctx, records))

		loaded, err := store.Load(ctx, store.RunID())
		require.NoError(t, err)
		assert.Equal(t, records, loaded)
	})

	t.Run("latest run", func(t *testing.T) {
		runID, err := store.LatestRun(ctx)
		require.NoError(t, err)
		assert.Equal(t, store.RunID(), runID)

		run, err := NewLatestRunSource(store).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, runID.String(), run.ID)
		assert.Len(t, run.Records, len(records))
	})

	t.Run("unknown run is empty", func(t *testing.T) {
		loaded, err := store.Load(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}
