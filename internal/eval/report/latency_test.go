package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLatencyStats_Empty(t *testing.T) {
	stats := ComputeLatencyStats(nil)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.Median)
	assert.Zero(t, stats.SampleCount)
	assert.NotNil(t, stats.Percentiles)
	assert.True(t, stats.IsZero())
}

func TestComputeLatencyStats_SingleValue(t *testing.T) {
	stats := ComputeLatencyStats([]float64{10})

	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 10.0, stats.Max)
	assert.Equal(t, 10.0, stats.Mean)
	assert.Equal(t, 10.0, stats.Median)
	assert.Equal(t, 10.0, stats.P99())
	assert.Equal(t, 1, stats.SampleCount)
	assert.Zero(t, stats.Stddev)
	assert.False(t, stats.IsZero())
}

func TestComputeLatencyStats_MultipleValues(t *testing.T) {
	stats := ComputeLatencyStats([]float64{50, 10, 40, 20, 30})

	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 50.0, stats.Max)
	assert.Equal(t, 30.0, stats.Mean)
	assert.Equal(t, 30.0, stats.Median)
	assert.Equal(t, 5, stats.SampleCount)
	// sample stddev of 10..50 step 10
	assert.InDelta(t, 15.811388, stats.Stddev, 1e-6)
}

func TestComputeLatencyStats_EvenCount(t *testing.T) {
	stats := ComputeLatencyStats([]float64{10, 20, 30, 40})

	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 40.0, stats.Max)
	assert.Equal(t, 25.0, stats.Mean)
	assert.Equal(t, 25.0, stats.Median)
}

func TestComputeLatencyStats_Percentiles(t *testing.T) {
	samples := make([]float64, 0, 101)
	for i := 0; i <= 100; i++ {
		samples = append(samples, float64(i))
	}
	stats := ComputeLatencyStats(samples)

	assert.InDelta(t, 50.0, stats.P50(), 1e-9)
	assert.InDelta(t, 75.0, stats.P75(), 1e-9)
	assert.InDelta(t, 90.0, stats.P90(), 1e-9)
	assert.InDelta(t, 95.0, stats.P95(), 1e-9)
	assert.InDelta(t, 99.0, stats.P99(), 1e-9)
}

func TestComputeLatencyStats_DoesNotMutateInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	ComputeLatencyStats(samples)
	assert.Equal(t, []float64{3, 1, 2}, samples)
}
