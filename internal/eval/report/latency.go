package report

import (
	"math"
	"sort"
)

// LatencyStats summarizes latency samples in milliseconds.
type LatencyStats struct {
	Min         float64         `json:"min"`
	Max         float64         `json:"max"`
	Mean        float64         `json:"mean"`
	Median      float64         `json:"median"`
	Stddev      float64         `json:"stddev"`
	Percentiles map[int]float64 `json:"percentiles"`
	SampleCount int             `json:"sample_count"`
}

var defaultPercentiles = []int{50, 75, 90, 95, 99}

func ComputeLatencyStats(samples []float64) LatencyStats {
	if len(samples) == 0 {
		return LatencyStats{
			Percentiles: make(map[int]float64),
		}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	stats := LatencyStats{
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Median:      percentile(sorted, 50),
		Percentiles: make(map[int]float64),
		SampleCount: len(samples),
	}

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	stats.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		var sumSquares float64
		for _, v := range sorted {
			diff := v - stats.Mean
			sumSquares += diff * diff
		}
		stats.Stddev = math.Sqrt(sumSquares / float64(len(sorted)-1))
	}

	for _, p := range defaultPercentiles {
		stats.Percentiles[p] = percentile(sorted, p)
	}

	return stats
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s LatencyStats) P50() float64 { return s.Percentiles[50] }
func (s LatencyStats) P75() float64 { return s.Percentiles[75] }
func (s LatencyStats) P90() float64 { return s.Percentiles[90] }
func (s LatencyStats) P95() float64 { return s.Percentiles[95] }
func (s LatencyStats) P99() float64 { return s.Percentiles[99] }

func (s LatencyStats) IsZero() bool {
	return s.SampleCount == 0
}
