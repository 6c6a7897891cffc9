package results

import "sync"

// Table is the append-only, ordered result table of one run. It is safe for
// concurrent use; Snapshot returns a copy that later appends do not touch.
type Table struct {
	mu      sync.RWMutex
	records []Record
}

func NewTable() *Table {
	return &Table{records: make([]Record, 0)}
}

func (t *Table) Append(r Record) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, r)
	return len(t.records)
}

func (t *Table) Snapshot() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
