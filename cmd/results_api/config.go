package main

import (
	"os"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
	"github.com/DjordjeVuckovic/rag-eval/pkg/config/env"
)

type AppConfig struct {
	// ResultsPath is the JSON result file served when ResultsDB is empty.
	ResultsPath string
	// ResultsDB, when set, serves the latest run stored in PostgreSQL.
	ResultsDB string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{}
}

func (a *AppConfig) Load() (*AppConfig, error) {
	a.ResultsPath = env.Get("RESULTS_PATH", results.DefaultPath)
	a.ResultsDB = os.Getenv("RESULTS_DB")
	return a, nil
}
