package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/rag-eval/db"
	"github.com/DjordjeVuckovic/rag-eval/internal/embedding"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/config"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/dataset"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/prompt"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/runner"
	"github.com/DjordjeVuckovic/rag-eval/internal/llm"
	pgpool "github.com/DjordjeVuckovic/rag-eval/internal/pg"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore/factory"
	"github.com/DjordjeVuckovic/rag-eval/pkg/config/env"
)

func main() {
	cli, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if cli.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/rag_eval/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	cfg, err := cli.runConfig()
	if err != nil {
		slog.Error("Invalid run configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Evaluation failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.RunConfig) error {
	items, err := dataset.LoadFromFile(cfg.Dataset)
	if err != nil {
		return err
	}
	index, err := dataset.BuildIndex(items)
	if err != nil {
		return err
	}
	slog.Info("Loaded dataset", "path", cfg.Dataset, "items", len(items), "passages", index.Len())

	tmpl := prompt.Default()
	if cfg.PromptTemplate != "" {
		if tmpl, err = prompt.LoadFromFile(cfg.PromptTemplate); err != nil {
			return err
		}
	}

	embedder, err := embedding.New(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}

	store, err := factory.NewStore(ctx, cfg.VectorStore, embedder)
	if err != nil {
		return fmt.Errorf("create vector store: %w", err)
	}
	defer store.Close()

	if err := runner.Seed(ctx, store, index); err != nil {
		return err
	}

	generator, err := llm.New(cfg.LLM)
	if err != nil {
		return fmt.Errorf("create llm client: %w", err)
	}

	runID := uuid.New()
	writer, cleanup, err := newWriter(ctx, cfg, runID)
	if err != nil {
		return err
	}
	defer cleanup()

	r := runner.New(runner.Config{
		TopK:    cfg.Retrieval.TopK,
		Cutoff:  metrics.Cutoff,
		OnError: cfg.Run.OnError,
	}, store, generator, writer, runner.WithTemplate(tmpl))

	slog.Info("Starting evaluation",
		"run_id", runID,
		"embedding", cfg.Embedding.Provider,
		"llm", cfg.LLM.Provider,
		"vector_store", cfg.VectorStore.Type,
		"on_error", cfg.Run.OnError,
	)

	table, runErr := r.Run(ctx, items)

	summary := report.Generate(table.Snapshot(), runID.String())
	report.WriteTable(summary, os.Stdout)

	if cfg.Summary != "" {
		if err := report.WriteJSON(summary, cfg.Summary); err != nil {
			return errors.Join(runErr, err)
		}
		slog.Info("Summary written", "path", cfg.Summary)
	}

	if runErr != nil {
		return runErr
	}
	slog.Info("Finished evaluation", "results", cfg.Output, "records", table.Len())
	return nil
}

// newWriter persists to the result file and, when configured, to the
// results database under runID.
func newWriter(ctx context.Context, cfg *config.RunConfig, runID uuid.UUID) (results.Writer, func(), error) {
	fileWriter := results.NewJSONWriter(cfg.Output)
	if cfg.ResultsDB == nil {
		return fileWriter, func() {}, nil
	}

	pool, err := pgpool.NewConnectionPool(ctx, pgpool.PoolConfig{ConnStr: cfg.ResultsDB.Connection})
	if err != nil {
		return nil, nil, fmt.Errorf("connect results database: %w", err)
	}
	if err := pgpool.Migrate(ctx, pool, db.Migrations); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return results.MultiWriter{fileWriter, results.NewPgStore(pool, runID)}, pool.Close, nil
}
