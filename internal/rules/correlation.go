package rules

import (
	"math"

	"github.com/muhammadchandra19/tickpulse/internal/stats"
)

// CorrelationBreak watches a pair of price series and fires when their
// correlation magnitude drops below the threshold, the classic pairs-trading
// entry condition.
type CorrelationBreak struct {
	covar     *stats.Covar
	threshold float64
	minObs    uint64
}

// NewCorrelationBreak creates a rule with the given correlation threshold
// and minimum pair observations. Non-positive arguments fall back to the
// defaults 0.3 and 50.
func NewCorrelationBreak(threshold float64, minObs int) *CorrelationBreak {
	if threshold <= 0 {
		threshold = DefaultCorrelationThreshold
	}
	if minObs <= 0 {
		minObs = DefaultCorrelationMinObs
	}
	return &CorrelationBreak{
		covar:     stats.NewCovar(),
		threshold: threshold,
		minObs:    uint64(minObs),
	}
}

// AddPair records one (x, y) price observation pair.
func (r *CorrelationBreak) AddPair(x, y float64) {
	r.covar.Add(x, y)
}

// Evaluate returns the current correlation and whether its magnitude fell
// below the threshold. Needs at least minObs pairs.
func (r *CorrelationBreak) Evaluate() (float64, bool) {
	if r.covar.Count() < r.minObs {
		return 0, false
	}
	corr := r.covar.Correlation()
	return corr, math.Abs(corr) < r.threshold
}

// Reset clears the accumulated comoment; warmup restarts.
func (r *CorrelationBreak) Reset() {
	r.covar.Reset()
}

// Correlation returns the current correlation estimate.
func (r *CorrelationBreak) Correlation() float64 {
	return r.covar.Correlation()
}

// Beta returns the current regression slope estimate.
func (r *CorrelationBreak) Beta() float64 {
	return r.covar.Beta()
}

// Count returns the number of pair observations so far.
func (r *CorrelationBreak) Count() uint64 {
	return r.covar.Count()
}
