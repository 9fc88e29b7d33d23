package signal

import (
	"time"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
)

// Signal represents one archived signal event row.
type Signal struct {
	Timestamp       time.Time
	SignalID        int64
	Type            string
	PrimarySymbol   string
	SecondarySymbol string
	Strength        float64
	Confidence      float64
	LatencyUs       int64
}

// FromEvent converts a SignalEvent into its archival row.
func FromEvent(event marketv1.SignalEvent) *Signal {
	return &Signal{
		Timestamp:       event.EventTime,
		SignalID:        int64(event.SignalID),
		Type:            event.Type.ShortName(),
		PrimarySymbol:   event.PrimarySymbol,
		SecondarySymbol: event.SecondarySymbol,
		Strength:        event.SignalStrength,
		Confidence:      event.Confidence,
		LatencyUs:       event.Latency().Microseconds(),
	}
}

// Filter represents the filter criteria for archived signals.
type Filter struct {
	PrimarySymbol string
	Type          string
	From          *time.Time
	To            *time.Time
	Limit         int
}
