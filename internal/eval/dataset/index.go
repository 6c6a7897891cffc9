package dataset

import (
	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
)

type Passage struct {
	ID   string
	Text string
}

// PassageIndex maps passage IDs to text across the whole dataset. It is
// read-only once built and iterates in first-seen order.
type PassageIndex struct {
	order []string
	texts map[string]string
}

// BuildIndex unions the (context_ids, contexts) pairs of all items. Items
// without passage text contribute nothing. An ID seen twice must carry the
// same text both times.
func BuildIndex(items []Item) (*PassageIndex, error) {
	idx := &PassageIndex{texts: make(map[string]string)}

	for i, item := range items {
		if len(item.Contexts) == 0 {
			continue
		}
		for j, id := range item.ContextIDs {
			text := item.Contexts[j]
			if existing, ok := idx.texts[id]; ok {
				if existing != text {
					return nil, apperr.NewValidationf("item %d: passage %q has conflicting text", i, id)
				}
				continue
			}
			idx.texts[id] = text
			idx.order = append(idx.order, id)
		}
	}

	return idx, nil
}

func (x *PassageIndex) Get(id string) (string, bool) {
	text, ok := x.texts[id]
	return text, ok
}

func (x *PassageIndex) Len() int {
	return len(x.order)
}

func (x *PassageIndex) IDs() []string {
	return append([]string(nil), x.order...)
}

// Resolve returns the passages known for ids, in the given order, skipping
// unknown IDs.
func (x *PassageIndex) Resolve(ids []string) []Passage {
	out := make([]Passage, 0, len(ids))
	for _, id := range ids {
		if text, ok := x.texts[id]; ok {
			out = append(out, Passage{ID: id, Text: text})
		}
	}
	return out
}

// Documents converts the index into vector store documents tagged with their source ID.
func (x *PassageIndex) Documents() []vectorstore.Document {
	docs := make([]vectorstore.Document, len(x.order))
	for i, id := range x.order {
		docs[i] = vectorstore.Document{
			ID:       id,
			Text:     x.texts[id],
			Metadata: vectorstore.SourceMetadata(id),
		}
	}
	return docs
}
