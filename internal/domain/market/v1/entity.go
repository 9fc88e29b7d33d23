package marketv1

import (
	"math"
	"time"
)

// Tick represents a single market data observation for one symbol.
// Producers fill every field; the consumer treats it as an immutable value.
type Tick struct {
	LastPrice  float64   `json:"lastPrice"`
	BidPrice   float64   `json:"bidPrice"`
	AskPrice   float64   `json:"askPrice"`
	LastSize   float64   `json:"lastSize"`
	Timestamp  time.Time `json:"timestamp"`
	Symbol     string    `json:"symbol"`
	SequenceID uint64    `json:"sequenceID"` // per-symbol, starts at 1
}

// MidPrice returns the bid/ask midpoint.
func (t *Tick) MidPrice() float64 {
	return (t.BidPrice + t.AskPrice) * 0.5
}

// Spread returns the bid/ask spread.
func (t *Tick) Spread() float64 {
	return t.AskPrice - t.BidPrice
}

// SpreadBps returns the spread in basis points of the midpoint.
func (t *Tick) SpreadBps() float64 {
	mid := t.MidPrice()
	if mid <= 0 {
		return 0
	}
	return (t.Spread() / mid) * 10000.0
}

// IsValid reports whether the tick satisfies the producer contract:
// positive finite prices, bid not above ask, non-empty symbol.
func (t *Tick) IsValid() bool {
	return t.LastPrice > 0 && !math.IsInf(t.LastPrice, 0) &&
		t.BidPrice > 0 && !math.IsInf(t.BidPrice, 0) &&
		t.AskPrice > 0 && !math.IsInf(t.AskPrice, 0) &&
		t.BidPrice <= t.AskPrice &&
		t.Symbol != ""
}

// SignalType represents the kind of trading signal an event carries.
type SignalType string

const (
	// SignalZScoreBreak fires when a price z-score exceeds its threshold.
	SignalZScoreBreak SignalType = "z_score_break"
	// SignalCorrelationBreak fires when a watched pair loses correlation.
	SignalCorrelationBreak SignalType = "correlation_break"
	// SignalPairTradeEntry fires when the fast/slow EMA divergence exceeds its threshold.
	SignalPairTradeEntry SignalType = "pair_trade_entry"
	// SignalPairTradeExit marks the close of a pair trade. No core rule emits
	// it today; the type exists so downstream schemas stay stable.
	SignalPairTradeExit SignalType = "pair_trade_exit"
	// SignalVolumeSpike fires when trade size z-score exceeds its threshold.
	SignalVolumeSpike SignalType = "volume_spike"
)

// ShortName returns the compact label used by the CSV export, the log sink
// and the signal archive.
func (s SignalType) ShortName() string {
	switch s {
	case SignalZScoreBreak:
		return "ZBreak"
	case SignalCorrelationBreak:
		return "CorrBreak"
	case SignalPairTradeEntry:
		return "PairEntry"
	case SignalPairTradeExit:
		return "PairExit"
	case SignalVolumeSpike:
		return "VolSpike"
	default:
		return "Unknown"
	}
}

// SignalEvent is emitted by the engine when a rule's firing condition is met.
type SignalEvent struct {
	Type            SignalType `json:"type"`
	PrimarySymbol   string     `json:"primarySymbol"`
	SecondarySymbol string     `json:"secondarySymbol,omitempty"` // pair signals only
	SignalStrength  float64    `json:"signalStrength"`
	Confidence      float64    `json:"confidence"`
	EventTime       time.Time  `json:"eventTime"`      // timestamp of the triggering tick
	GenerationTime  time.Time  `json:"generationTime"` // captured at emission
	SignalID        uint64     `json:"signalID"`
}

// Latency returns the time between the triggering tick and signal emission.
func (e *SignalEvent) Latency() time.Duration {
	return e.GenerationTime.Sub(e.EventTime)
}
