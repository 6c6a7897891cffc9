package runner

import (
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/config"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/metrics"
)

type Config struct {
	// TopK is how many passages are requested from the retriever.
	TopK int
	// Cutoff is the k of the retrieval metrics.
	Cutoff  int
	OnError config.OnError
}

func DefaultConfig() Config {
	return Config{
		TopK:    config.DefaultTopK,
		Cutoff:  metrics.Cutoff,
		OnError: config.OnErrorAbort,
	}
}
