package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// directVariance computes sample variance with the textbook two-pass formula
// for cross-checking the online estimator.
func directVariance(values []float64) (mean, variance float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return mean, ss / float64(len(values)-1)
}

func TestRunning_Empty(t *testing.T) {
	r := NewRunning()

	assert.Equal(t, uint64(0), r.Count())
	assert.Equal(t, 0.0, r.Mean())
	assert.Equal(t, 0.0, r.Variance())
	assert.Equal(t, 0.0, r.StdDev())
	assert.Equal(t, 0.0, r.ZScore(5))
	assert.False(t, r.IsValid())
}

func TestRunning_MatchesDirectFormula(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
	}{
		{name: "single value", values: []float64{42}},
		{name: "two values", values: []float64{1, 3}},
		{name: "small ints", values: []float64{2, 4, 4, 4, 5, 5, 7, 9}},
		{name: "prices", values: []float64{100.25, 100.30, 100.10, 99.95, 100.40, 100.05}},
		{name: "negative and positive", values: []float64{-5, -1, 0, 1, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRunning()
			for _, v := range tc.values {
				r.Add(v)
			}

			wantMean, wantVar := directVariance(tc.values)
			assert.Equal(t, uint64(len(tc.values)), r.Count())
			assert.InDelta(t, wantMean, r.Mean(), 1e-9)
			assert.InDelta(t, wantVar, r.Variance(), 1e-9)
			assert.True(t, r.IsValid())
		})
	}
}

func TestRunning_PopulationVariance(t *testing.T) {
	r := NewRunning()
	for _, v := range []float64{2, 4, 6} {
		r.Add(v)
	}

	// sample: ss/2 = 4, population: ss/3
	assert.InDelta(t, 4.0, r.Variance(), 1e-12)
	assert.InDelta(t, 8.0/3.0, r.PopulationVariance(), 1e-12)
}

// Shifted inputs with tiny spread around 1e12. The naive sum-of-squares
// formula collapses here; Welford must keep the variance in (0, 1).
func TestRunning_NumericalStability(t *testing.T) {
	r := NewRunning()
	for i := 0; i < 1000; i++ {
		r.Add(1e12 + float64(i)*1e-3)
	}

	v := r.Variance()
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, 1.0)
	assert.True(t, r.IsValid())
}

func TestRunning_LongStreamStaysFinite(t *testing.T) {
	r := NewRunning()
	for i := 0; i < 1_000_000; i++ {
		r.Add(100 + math.Sin(float64(i))*5)
	}

	require.True(t, r.IsValid())
	assert.InDelta(t, 100.0, r.Mean(), 0.5)
	assert.Greater(t, r.StdDev(), 0.0)
}

func TestRunning_ZScoreAndCV(t *testing.T) {
	r := NewRunning()
	for _, v := range []float64{10, 20, 30} {
		r.Add(v)
	}

	// mean 20, sample stddev 10
	assert.InDelta(t, 1.0, r.ZScore(30), 1e-12)
	assert.InDelta(t, -1.0, r.ZScore(10), 1e-12)
	assert.InDelta(t, 0.5, r.CV(), 1e-12)
}

func TestRunning_DegenerateDefaults(t *testing.T) {
	r := NewRunning()
	for i := 0; i < 10; i++ {
		r.Add(7)
	}

	// constant series: stddev 0 -> z-score defined as 0
	assert.Equal(t, 0.0, r.StdDev())
	assert.Equal(t, 0.0, r.ZScore(100))
	assert.Equal(t, 0.0, r.CV())
}

func TestRunning_Reset(t *testing.T) {
	r := NewRunning()
	for _, v := range []float64{1, 2, 3} {
		r.Add(v)
	}
	r.Reset()

	assert.Equal(t, uint64(0), r.Count())
	assert.Equal(t, 0.0, r.Mean())
	assert.Equal(t, 0.0, r.Variance())
	assert.False(t, r.IsValid())

	// The estimator must be reusable after reset.
	r.Add(5)
	assert.Equal(t, uint64(1), r.Count())
	assert.Equal(t, 5.0, r.Mean())
}
