package results

import (
	"context"
	"errors"
)

// Run is a loaded result table and, when known, the run it belongs to.
type Run struct {
	ID      string
	Records []Record
}

// Source loads the result table a reader should see.
type Source interface {
	Load(ctx context.Context) (*Run, error)
}

// FileSource reads the JSON result file on every Load.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultPath
	}
	return &FileSource{path: path}
}

func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Load(_ context.Context) (*Run, error) {
	records, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	return &Run{Records: records}, nil
}

// LatestRunSource serves the most recent run stored in PostgreSQL. An empty
// table yields an empty run.
type LatestRunSource struct {
	store *PgStore
}

func NewLatestRunSource(store *PgStore) *LatestRunSource {
	return &LatestRunSource{store: store}
}

func (s *LatestRunSource) Load(ctx context.Context) (*Run, error) {
	runID, err := s.store.LatestRun(ctx)
	if errors.Is(err, ErrNoRuns) {
		return &Run{Records: []Record{}}, nil
	}
	if err != nil {
		return nil, err
	}

	records, err := s.store.Load(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &Run{ID: runID.String(), Records: records}, nil
}
