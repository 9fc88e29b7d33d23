// Package rules contains the stateful signal evaluators the engine drives
// on every tick. A rule accumulates observations through its Add method and
// reports (strength, fires) when evaluated; evaluation never mutates state.
// During warmup a rule reports (0, false).
package rules

// Default thresholds and windows, used when the caller does not configure
// their own.
const (
	DefaultZScoreThreshold      = 2.5
	DefaultVolumeThreshold      = 3.0
	DefaultCorrelationThreshold = 0.3
	DefaultCorrelationMinObs    = 50
	DefaultFastWindow           = 10
	DefaultSlowWindow           = 50
	DefaultMeanRevThreshold     = 2.0

	zscoreWarmup = 10
	volumeWarmup = 20
)
