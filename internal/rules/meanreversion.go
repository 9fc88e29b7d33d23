package rules

import (
	"math"

	"github.com/muhammadchandra19/tickpulse/internal/stats"
)

// MeanReversion tracks a fast and a slow EMA of the same series and fires
// when the fast mean diverges from the slow mean by at least the threshold,
// measured in fast-EMA standard deviations.
type MeanReversion struct {
	fast      *stats.EMA
	slow      *stats.EMA
	threshold float64
	hasValue  bool
}

// NewMeanReversion creates a rule over the given fast/slow EMA windows.
// Non-positive arguments fall back to the defaults {10, 50} and 2.0.
func NewMeanReversion(fastWindow, slowWindow int, threshold float64) *MeanReversion {
	if fastWindow <= 0 {
		fastWindow = DefaultFastWindow
	}
	if slowWindow <= 0 {
		slowWindow = DefaultSlowWindow
	}
	if threshold <= 0 {
		threshold = DefaultMeanRevThreshold
	}
	return &MeanReversion{
		fast:      stats.NewEMAWindow(fastWindow),
		slow:      stats.NewEMAWindow(slowWindow),
		threshold: threshold,
	}
}

// Add records one price observation into both EMAs.
func (r *MeanReversion) Add(value float64) {
	r.fast.Add(value)
	r.slow.Add(value)
	r.hasValue = true
}

// Evaluate returns the signed divergence (fastMean - slowMean) / fastStdDev
// and whether its magnitude crossed the threshold. Both EMAs must be
// initialized and the fast stddev must be non-degenerate.
func (r *MeanReversion) Evaluate() (float64, bool) {
	if !r.hasValue || !r.fast.Initialized() || !r.slow.Initialized() {
		return 0, false
	}

	fastStd := r.fast.StdDev()
	if fastStd <= 0 {
		return 0, false
	}

	strength := (r.fast.Mean() - r.slow.Mean()) / fastStd
	return strength, math.Abs(strength) >= r.threshold
}

// Reset clears both EMAs; warmup restarts.
func (r *MeanReversion) Reset() {
	r.fast.Reset()
	r.slow.Reset()
	r.hasValue = false
}
