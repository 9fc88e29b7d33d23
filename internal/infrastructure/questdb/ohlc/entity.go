package ohlc

import (
	"time"

	"github.com/muhammadchandra19/tickpulse/pkg/interval"
)

// OHLC represents one archived bar.
type OHLC struct {
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

// FromAggregate converts an aggregated bar into its archival row.
func FromAggregate(symbol string, data interval.OHLCData) *OHLC {
	return &OHLC{
		Timestamp:  data.Timestamp,
		Symbol:     symbol,
		Interval:   data.Interval,
		Open:       data.Open,
		High:       data.High,
		Low:        data.Low,
		Close:      data.Close,
		Volume:     data.Volume,
		TradeCount: data.TradeCount,
	}
}
