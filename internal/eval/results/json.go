package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const DefaultPath = "eval_results.json"

// JSONWriter rewrites the result file as a JSON array of records.
type JSONWriter struct {
	path string
}

func NewJSONWriter(path string) *JSONWriter {
	if path == "" {
		path = DefaultPath
	}
	return &JSONWriter{path: path}
}

func (w *JSONWriter) Path() string {
	return w.path
}

func (w *JSONWriter) Write(_ context.Context, records []Record) error {
	return WriteJSON(w.path, records)
}

// WriteJSON writes records to a temp file next to path and renames it into
// place, so readers never see a half-written table.
func WriteJSON(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp results file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close results: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace results file: %w", err)
	}

	return nil
}

func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse results file: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
