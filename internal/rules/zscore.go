package rules

import (
	"math"

	"github.com/muhammadchandra19/tickpulse/internal/stats"
)

// ZScore fires when the latest observation deviates from its running mean by
// at least the configured number of standard deviations, in either direction.
type ZScore struct {
	stats     *stats.Running
	threshold float64
	lastValue float64
	hasValue  bool
}

// NewZScore creates a rule with the given threshold. Non-positive thresholds
// fall back to the default.
func NewZScore(threshold float64) *ZScore {
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}
	return &ZScore{
		stats:     stats.NewRunning(),
		threshold: threshold,
	}
}

// Add records one price observation.
func (r *ZScore) Add(value float64) {
	r.stats.Add(value)
	r.lastValue = value
	r.hasValue = true
}

// Evaluate returns the signed z-score of the latest observation and whether
// it crossed the threshold. Needs at least 10 observations.
func (r *ZScore) Evaluate() (float64, bool) {
	if !r.hasValue || r.stats.Count() < zscoreWarmup {
		return 0, false
	}
	strength := r.stats.ZScore(r.lastValue)
	return strength, math.Abs(strength) >= r.threshold
}

// Reset clears all accumulated state; warmup restarts.
func (r *ZScore) Reset() {
	r.stats.Reset()
	r.lastValue = 0
	r.hasValue = false
}

// Threshold returns the configured firing threshold.
func (r *ZScore) Threshold() float64 {
	return r.threshold
}
