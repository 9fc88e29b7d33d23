package marketv1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTick_DerivedQuantities(t *testing.T) {
	tick := Tick{
		Symbol:     "AAPL",
		LastPrice:  100.05,
		BidPrice:   100.00,
		AskPrice:   100.10,
		LastSize:   250,
		Timestamp:  time.Now(),
		SequenceID: 1,
	}

	assert.InDelta(t, 100.05, tick.MidPrice(), 1e-9)
	assert.InDelta(t, 0.10, tick.Spread(), 1e-9)
	assert.InDelta(t, 0.10/100.05*10000, tick.SpreadBps(), 1e-9)
}

func TestTick_SpreadBpsDegenerateMid(t *testing.T) {
	tick := Tick{BidPrice: 0, AskPrice: 0}
	assert.Equal(t, 0.0, tick.SpreadBps())
}

func TestTick_IsValid(t *testing.T) {
	valid := Tick{
		Symbol: "AAPL", LastPrice: 100, BidPrice: 99.9, AskPrice: 100.1,
	}

	testCases := []struct {
		name   string
		mutate func(*Tick)
		want   bool
	}{
		{name: "valid", mutate: func(*Tick) {}, want: true},
		{name: "bid equals ask", mutate: func(t *Tick) { t.BidPrice = t.AskPrice }, want: true},
		{name: "empty symbol", mutate: func(t *Tick) { t.Symbol = "" }, want: false},
		{name: "zero last price", mutate: func(t *Tick) { t.LastPrice = 0 }, want: false},
		{name: "negative bid", mutate: func(t *Tick) { t.BidPrice = -1 }, want: false},
		{name: "crossed book", mutate: func(t *Tick) { t.BidPrice = 101; t.AskPrice = 100 }, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tick := valid
			tc.mutate(&tick)
			assert.Equal(t, tc.want, tick.IsValid())
		})
	}
}

func TestSignalType_ShortName(t *testing.T) {
	assert.Equal(t, "ZBreak", SignalZScoreBreak.ShortName())
	assert.Equal(t, "CorrBreak", SignalCorrelationBreak.ShortName())
	assert.Equal(t, "PairEntry", SignalPairTradeEntry.ShortName())
	assert.Equal(t, "PairExit", SignalPairTradeExit.ShortName())
	assert.Equal(t, "VolSpike", SignalVolumeSpike.ShortName())
	assert.Equal(t, "Unknown", SignalType("bogus").ShortName())
}

func TestSignalEvent_Latency(t *testing.T) {
	eventTime := time.Now()
	event := SignalEvent{
		EventTime:      eventTime,
		GenerationTime: eventTime.Add(150 * time.Microsecond),
	}

	assert.Equal(t, 150*time.Microsecond, event.Latency())
}

func TestSinkFunc_Publish(t *testing.T) {
	var got SignalEvent
	sink := SinkFunc(func(event SignalEvent) { got = event })

	sink.Publish(SignalEvent{SignalID: 42})
	assert.Equal(t, uint64(42), got.SignalID)
}
