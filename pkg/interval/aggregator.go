package interval

import (
	"time"
)

// TickData represents the tick fields needed for aggregation.
type TickData struct {
	Timestamp time.Time
	Price     float64
	Volume    float64
}

// OHLCData represents one aggregated OHLC bar.
type OHLCData struct {
	Timestamp  time.Time
	Symbol     string
	Interval   string
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	TradeCount int64
}

// AggregateOHLC aggregates tick data into one OHLC bar for the given bucket.
// Ticks are assumed to be in timestamp order, as the archiver buffers them.
func (i Interval) AggregateOHLC(ticks []TickData, bucketTime time.Time) OHLCData {
	if len(ticks) == 0 {
		return OHLCData{Timestamp: bucketTime, Interval: i.Name}
	}

	ohlc := OHLCData{
		Timestamp:  bucketTime,
		Interval:   i.Name,
		Open:       ticks[0].Price,
		High:       ticks[0].Price,
		Low:        ticks[0].Price,
		Close:      ticks[len(ticks)-1].Price,
		TradeCount: int64(len(ticks)),
	}

	for _, tick := range ticks {
		if tick.Price > ohlc.High {
			ohlc.High = tick.Price
		}
		if tick.Price < ohlc.Low {
			ohlc.Low = tick.Price
		}
		ohlc.Volume += tick.Volume
	}

	return ohlc
}

// ShouldAggregate reports whether a new bucket has started since the last
// aggregation.
func (i Interval) ShouldAggregate(lastAggregation, currentTime time.Time) bool {
	return !i.IsInBucket(lastAggregation, currentTime)
}
