package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgpool "github.com/DjordjeVuckovic/rag-eval/internal/pg"
)

var ErrNoRuns = errors.New("no evaluation runs recorded")

var resultColumns = []string{
	"run_id", "position", "question", "ground_truth", "retrieved_ids",
	"ctx_recall_at_5", "mrr_at_5", "map_at_5", "pred_answer",
	"gen_em", "gen_f1", "e2e_em", "e2e_f1",
	"retrieval_latency", "generation_latency", "error",
}

// PgStore mirrors result snapshots into the eval_results table, one set of
// rows per run ID.
type PgStore struct {
	db    *pgxpool.Pool
	runID uuid.UUID
}

func NewPgStore(pool *pgpool.ConnectionPool, runID uuid.UUID) *PgStore {
	return &PgStore{db: pool.GetConn(), runID: runID}
}

func (s *PgStore) RunID() uuid.UUID {
	return s.runID
}

// Write replaces the rows of the current run with records inside one
// transaction.
func (s *PgStore) Write(ctx context.Context, records []Record) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		answers, err := json.Marshal(nonNil(r.GroundTruthAnswers))
		if err != nil {
			return fmt.Errorf("failed to marshal answers for record %d: %w", i, err)
		}
		retrieved, err := json.Marshal(nonNil(r.RetrievedIDs))
		if err != nil {
			return fmt.Errorf("failed to marshal retrieved ids for record %d: %w", i, err)
		}

		var errText *string
		if r.Error != "" {
			errText = &r.Error
		}

		rows[i] = []any{
			s.runID, i, r.Question, answers, retrieved,
			r.CtxRecall, r.MRR, r.MAP, r.PredAnswer,
			r.GenEM, r.GenF1, r.E2EEM, r.E2EF1,
			r.RetrievalLatency, r.GenerationLatency, errText,
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM eval_results WHERE run_id = $1`, s.runID); err != nil {
		return fmt.Errorf("failed to clear run %s: %w", s.runID, err)
	}

	if len(rows) > 0 {
		_, err = tx.CopyFrom(ctx, pgx.Identifier{"eval_results"}, resultColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to copy results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}

	slog.Debug("Persisted results to postgres", "run_id", s.runID, "records", len(records))
	return nil
}

// Load reads back the records of runID in table order.
func (s *PgStore) Load(ctx context.Context, runID uuid.UUID) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT question, ground_truth, retrieved_ids,
			   ctx_recall_at_5, mrr_at_5, map_at_5, pred_answer,
			   gen_em, gen_f1, e2e_em, e2e_f1,
			   retrieval_latency, generation_latency, error
		FROM eval_results
		WHERE run_id = $1
		ORDER BY position;
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			r         Record
			answers   []byte
			retrieved []byte
			errText   *string
		)
		if err := rows.Scan(
			&r.Question, &answers, &retrieved,
			&r.CtxRecall, &r.MRR, &r.MAP, &r.PredAnswer,
			&r.GenEM, &r.GenF1, &r.E2EEM, &r.E2EF1,
			&r.RetrievalLatency, &r.GenerationLatency, &errText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if err := json.Unmarshal(answers, &r.GroundTruthAnswers); err != nil {
			return nil, fmt.Errorf("failed to decode answers: %w", err)
		}
		if err := json.Unmarshal(retrieved, &r.RetrievedIDs); err != nil {
			return nil, fmt.Errorf("failed to decode retrieved ids: %w", err)
		}
		r.Error = Value(errText)
		records = append(records, r)
	}

	return records, rows.Err()
}

// LatestRun returns the run with the most recently recorded rows.
func (s *PgStore) LatestRun(ctx context.Context) (uuid.UUID, error) {
	var runID uuid.UUID
	err := s.db.QueryRow(ctx, `
		SELECT run_id
		FROM eval_results
		GROUP BY run_id
		ORDER BY max(recorded_at) DESC
		LIMIT 1;
	`).Scan(&runID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrNoRuns
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to find latest run: %w", err)
	}
	return runID, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
