package engine

import (
	"github.com/muhammadchandra19/tickpulse/internal/rules"
)

// Options represents configuration options for the Engine. Thresholds are
// fixed once processing starts; changing them afterwards is a programmer
// error.
type Options struct {
	ZScoreThreshold      float64
	VolumeThreshold      float64
	CorrelationThreshold float64
	CorrelationMinObs    int
	FastWindow           int
	SlowWindow           int
	MeanRevThreshold     float64
}

// DefaultOptions returns the default engine options.
func DefaultOptions() *Options {
	return &Options{
		ZScoreThreshold:      rules.DefaultZScoreThreshold,
		VolumeThreshold:      rules.DefaultVolumeThreshold,
		CorrelationThreshold: rules.DefaultCorrelationThreshold,
		CorrelationMinObs:    rules.DefaultCorrelationMinObs,
		FastWindow:           rules.DefaultFastWindow,
		SlowWindow:           rules.DefaultSlowWindow,
		MeanRevThreshold:     rules.DefaultMeanRevThreshold,
	}
}
