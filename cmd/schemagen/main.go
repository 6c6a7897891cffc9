package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/config"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
	"github.com/DjordjeVuckovic/rag-eval/pkg/schema"
)

type target struct {
	file      string
	name      string
	value     any
	generator *schema.Generator
}

func main() {
	outputDir := flag.String("output", "api", "Output directory for generated schemas")
	flag.Parse()

	if err := generate(*outputDir); err != nil {
		slog.Error("Schema generation failed", "error", err)
		os.Exit(1)
	}
}

// generate writes the run config schema (YAML field names) and the result
// file schema (JSON field names) into dir.
func generate(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	targets := []target{
		{"run-config-v1.json", "RunConfig", config.RunConfig{}, schema.NewGenerator(schema.WithTagName("yaml"))},
		{"eval-results-v1.json", "EvalResults", []results.Record{}, schema.NewGenerator()},
	}

	for _, t := range targets {
		data, err := t.generator.GenerateJSONSchema(t.value, t.name)
		if err != nil {
			return fmt.Errorf("generate %s schema: %w", t.name, err)
		}

		path := filepath.Join(dir, t.file)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Info("Generated JSON schema", "path", path)
	}

	return nil
}
