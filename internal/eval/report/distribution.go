package report

import (
	"sort"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
	"github.com/DjordjeVuckovic/rag-eval/pkg/utils"
)

const DefaultF1Bins = 20

type ValueCount struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type Distributions struct {
	Recall []ValueCount `json:"ctx_recall@5"`
	MRR    []ValueCount `json:"mrr@5"`
	F1     []Bin        `json:"gen_f1"`
}

// ComputeDistributions counts distinct recall and MRR values (rounded to four
// decimals) and buckets generation F1 into equal-width bins over [0, 1].
// Null metrics are skipped.
func ComputeDistributions(records []results.Record, bins int) Distributions {
	if bins <= 0 {
		bins = DefaultF1Bins
	}

	recall := make(map[float64]int)
	mrr := make(map[float64]int)
	f1 := make([]Bin, bins)
	width := 1.0 / float64(bins)
	for i := range f1 {
		f1[i].Lower = utils.RoundDecimal(float64(i)*width, 4)
		f1[i].Upper = utils.RoundDecimal(float64(i+1)*width, 4)
	}

	for _, r := range records {
		if r.CtxRecall != nil {
			recall[utils.RoundDecimal(*r.CtxRecall, 4)]++
		}
		if r.MRR != nil {
			mrr[utils.RoundDecimal(*r.MRR, 4)]++
		}
		if r.GenF1 != nil {
			idx := min(int(*r.GenF1*float64(bins)), bins-1)
			f1[max(idx, 0)].Count++
		}
	}

	return Distributions{
		Recall: sortedCounts(recall),
		MRR:    sortedCounts(mrr),
		F1:     f1,
	}
}

func sortedCounts(m map[float64]int) []ValueCount {
	out := make([]ValueCount, 0, len(m))
	for v, c := range m {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
