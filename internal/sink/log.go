package sink

import (
	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/pkg/logger"
)

// Log writes every signal to the structured logger. Meant for demos and
// debugging, not for million-ticks-per-second runs.
type Log struct {
	logger *logger.Logger
}

// NewLog creates a logging sink.
func NewLog(log *logger.Logger) *Log {
	return &Log{logger: log}
}

// Publish logs one event.
func (s *Log) Publish(event marketv1.SignalEvent) {
	s.logger.Info("signal",
		logger.Field{Key: "signalID", Value: event.SignalID},
		logger.Field{Key: "type", Value: event.Type.ShortName()},
		logger.Field{Key: "primary", Value: event.PrimarySymbol},
		logger.Field{Key: "secondary", Value: event.SecondarySymbol},
		logger.Field{Key: "strength", Value: event.SignalStrength},
		logger.Field{Key: "confidence", Value: event.Confidence},
		logger.Field{Key: "latencyUs", Value: event.Latency().Microseconds()},
	)
}
