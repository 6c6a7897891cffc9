package report

import (
	"time"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
)

// Generate summarizes a result table. Failed records count toward Total and
// Failed but are left out of every mean and latency statistic.
func Generate(records []results.Record, runID string) *Summary {
	s := &Summary{
		RunID:       runID,
		Timestamp:   time.Now().UTC(),
		Environment: NewEnvironmentInfo(),
	}

	var (
		sums                  Means
		retrieval, generation []float64
	)

	for _, r := range records {
		s.Counts.Total++
		if r.Failed() {
			s.Counts.Failed++
			continue
		}
		s.Counts.Succeeded++

		sums.Recall += results.Value(r.CtxRecall)
		sums.MRR += results.Value(r.MRR)
		sums.MAP += results.Value(r.MAP)
		sums.GenEM += float64(results.Value(r.GenEM))
		sums.GenF1 += results.Value(r.GenF1)
		sums.E2EEM += float64(results.Value(r.E2EEM))
		sums.E2EF1 += results.Value(r.E2EF1)

		if results.Value(r.GenEM) == 1 {
			s.Counts.EMHits++
		}
		if r.RetrievalLatency != nil {
			retrieval = append(retrieval, *r.RetrievalLatency)
		}
		if r.GenerationLatency != nil {
			generation = append(generation, *r.GenerationLatency)
		}
	}

	if s.Counts.Succeeded > 0 {
		n := float64(s.Counts.Succeeded)
		s.Means = Means{
			Recall: sums.Recall / n,
			MRR:    sums.MRR / n,
			MAP:    sums.MAP / n,
			GenEM:  sums.GenEM / n,
			GenF1:  sums.GenF1 / n,
			E2EEM:  sums.E2EEM / n,
			E2EF1:  sums.E2EF1 / n,
		}
	}

	s.RetrievalLatency = ComputeLatencyStats(retrieval)
	s.GenerationLatency = ComputeLatencyStats(generation)

	return s
}
