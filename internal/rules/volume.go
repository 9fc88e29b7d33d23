package rules

import (
	"github.com/muhammadchandra19/tickpulse/internal/stats"
)

// Volume fires on unusually large trade sizes. Only the positive tail
// triggers: a drought of volume is not a spike.
type Volume struct {
	stats     *stats.Running
	threshold float64
	lastSize  float64
	hasValue  bool
}

// NewVolume creates a rule with the given threshold. Non-positive thresholds
// fall back to the default.
func NewVolume(threshold float64) *Volume {
	if threshold <= 0 {
		threshold = DefaultVolumeThreshold
	}
	return &Volume{
		stats:     stats.NewRunning(),
		threshold: threshold,
	}
}

// Add records one trade size observation.
func (r *Volume) Add(size float64) {
	r.stats.Add(size)
	r.lastSize = size
	r.hasValue = true
}

// Evaluate returns the z-score of the latest size and whether it exceeded
// the threshold. Needs at least 20 observations.
func (r *Volume) Evaluate() (float64, bool) {
	if !r.hasValue || r.stats.Count() < volumeWarmup {
		return 0, false
	}
	strength := r.stats.ZScore(r.lastSize)
	return strength, strength >= r.threshold
}

// Reset clears all accumulated state; warmup restarts.
func (r *Volume) Reset() {
	r.stats.Reset()
	r.lastSize = 0
	r.hasValue = false
}

// Threshold returns the configured firing threshold.
func (r *Volume) Threshold() float64 {
	return r.threshold
}
