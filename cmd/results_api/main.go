package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
	pgpool "github.com/DjordjeVuckovic/rag-eval/internal/pg"
	"github.com/DjordjeVuckovic/rag-eval/internal/router"
	"github.com/DjordjeVuckovic/rag-eval/internal/server"
	pkgserver "github.com/DjordjeVuckovic/rag-eval/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig("cmd/results_api/.env")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appCfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	source, healthChecker, cleanup, err := newSource(context.Background(), appCfg)
	if err != nil {
		slog.Error("Failed to open results source", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "RAG evaluation results API is running")
	})

	router.NewResultsRouter(s.Echo, source).Bind()
	router.NewMetricsRouter(s.Echo, source).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		cleanup()
		os.Exit(1)
	}
}

// newSource picks the results database when RESULTS_DB is set and the JSON
// result file otherwise.
func newSource(ctx context.Context, cfg *AppConfig) (results.Source, pkgserver.HealthChecker, func(), error) {
	if cfg.ResultsDB == "" {
		slog.Info("Serving result file", "path", cfg.ResultsPath)
		dir := filepath.Dir(cfg.ResultsPath)
		check := pkgserver.HealthCheckFunc(func(context.Context) error {
			_, err := os.Stat(dir)
			return err
		})
		return results.NewFileSource(cfg.ResultsPath), check, func() {}, nil
	}

	pool, err := pgpool.NewConnectionPool(ctx, pgpool.PoolConfig{ConnStr: cfg.ResultsDB})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect results database: %w", err)
	}
	slog.Info("Serving latest run from results database")

	// reading only, so the store needs no run of its own
	store := results.NewPgStore(pool, uuid.Nil)
	return results.NewLatestRunSource(store), pgpool.NewHealthChecker(pool), pool.Close, nil
}
