package es

type Document struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Source   string            `json:"source,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Vector   []float32         `json:"embedding"`
}

type knnQuery struct {
	Field         string    `json:"field"`
	QueryVector   []float32 `json:"query_vector"`
	K             int       `json:"k"`
	NumCandidates int       `json:"num_candidates"`
}

type searchRequest struct {
	Knn    knnQuery `json:"knn"`
	Size   int      `json:"size"`
	Source []string `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string   `json:"_id"`
			Score  float64  `json:"_score"`
			Source Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func indexMapping(dims int) map[string]any {
	return map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":       map[string]any{"type": "keyword"},
				"content":  map[string]any{"type": "text"},
				"source":   map[string]any{"type": "keyword"},
				"metadata": map[string]any{"type": "object", "enabled": false},
				"embedding": map[string]any{
					"type":       "dense_vector",
					"dims":       dims,
					"index":      true,
					"similarity": "cosine",
				},
			},
		},
	}
}
