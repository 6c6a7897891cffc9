package in_mem

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
)

type entry struct {
	doc vectorstore.Document
	vec []float32
}

// Store keeps passages and their vectors in memory and ranks by cosine
// similarity. Re-adding an ID replaces the earlier passage.
type Store struct {
	embedder vectorstore.Embedder

	storageLock sync.RWMutex
	entries     []entry
	positions   map[string]int
}

func NewStore(embedder vectorstore.Embedder) *Store {
	return &Store{
		embedder:  embedder,
		positions: make(map[string]int),
	}
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

	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for i, d := range docs {
		e := entry{doc: d, vec: vecs[i]}
		if pos, ok := s.positions[d.ID]; ok {
			s.entries[pos] = e
			continue
		}
		s.positions[d.ID] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	slog.Debug("Stored passages in memory", "count", len(docs), "total", len(s.entries))
	return nil
}

func (s *Store) Query(ctx context.Context, text string, topK int) ([]vectorstore.Hit, error) {
	if topK <= 0 {
		return nil, nil
	}

	qvec, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.storageLock.RLock()
	hits := make([]vectorstore.Hit, len(s.entries))
	for i, e := range s.entries {
		hits[i] = vectorstore.Hit{
			ID:    e.doc.ID,
			Text:  e.doc.Text,
			Score: cosine(qvec, e.vec),
		}
	}
	s.storageLock.RUnlock()

	// stable keeps insertion order among equal scores
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (s *Store) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return len(s.entries)
}

func (s *Store) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	n := min(len(a), len(b))

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
