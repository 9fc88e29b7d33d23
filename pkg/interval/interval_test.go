package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInterval(t *testing.T) {
	i, err := GetInterval("1m")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, i.Duration)

	_, err = GetInterval("3m")
	assert.Error(t, err)
}

func TestInterval_BucketMath(t *testing.T) {
	ts := time.Date(2025, 6, 1, 10, 3, 45, 0, time.UTC)

	bucket := Interval1m.CalculateBucketTime(ts)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 3, 0, 0, time.UTC), bucket)

	start, end := Interval5m.GetBucketRange(ts)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 5, 0, 0, time.UTC), end)

	assert.True(t, Interval1m.IsInBucket(ts, ts.Add(10*time.Second)))
	assert.False(t, Interval1m.IsInBucket(ts, ts.Add(time.Minute)))
}

func TestInterval_AggregateOHLC(t *testing.T) {
	bucket := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ticks := []TickData{
		{Timestamp: bucket.Add(1 * time.Second), Price: 100, Volume: 10},
		{Timestamp: bucket.Add(2 * time.Second), Price: 105, Volume: 5},
		{Timestamp: bucket.Add(3 * time.Second), Price: 95, Volume: 20},
		{Timestamp: bucket.Add(4 * time.Second), Price: 101, Volume: 1},
	}

	ohlc := Interval1m.AggregateOHLC(ticks, bucket)

	assert.Equal(t, 100.0, ohlc.Open)
	assert.Equal(t, 105.0, ohlc.High)
	assert.Equal(t, 95.0, ohlc.Low)
	assert.Equal(t, 101.0, ohlc.Close)
	assert.Equal(t, 36.0, ohlc.Volume)
	assert.Equal(t, int64(4), ohlc.TradeCount)
	assert.Equal(t, "1m", ohlc.Interval)
}

func TestInterval_AggregateOHLC_Empty(t *testing.T) {
	bucket := time.Now().Truncate(time.Minute)
	ohlc := Interval1m.AggregateOHLC(nil, bucket)

	assert.Equal(t, bucket, ohlc.Timestamp)
	assert.Equal(t, int64(0), ohlc.TradeCount)
	assert.Equal(t, 0.0, ohlc.Open)
}

func TestInterval_ShouldAggregate(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 59, 0, time.UTC)

	assert.False(t, Interval1m.ShouldAggregate(last, last.Add(500*time.Millisecond)))
	assert.True(t, Interval1m.ShouldAggregate(last, last.Add(2*time.Second)))
}
