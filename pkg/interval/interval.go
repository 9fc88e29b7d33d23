// Package interval provides time-bucket math and OHLC aggregation for
// archived ticks. Aggregation runs off the hot path, over batches the
// archiver has already buffered.
package interval

import (
	"fmt"
	"time"
)

// Interval represents a time interval for OHLC data
type Interval struct {
	Name     string
	Duration time.Duration
}

// Supported intervals configuration
var (
	Interval1s  = Interval{Name: "1s", Duration: time.Second}
	Interval10s = Interval{Name: "10s", Duration: 10 * time.Second}
	Interval1m  = Interval{Name: "1m", Duration: time.Minute}
	Interval5m  = Interval{Name: "5m", Duration: 5 * time.Minute}
	Interval15m = Interval{Name: "15m", Duration: 15 * time.Minute}
	Interval1h  = Interval{Name: "1h", Duration: time.Hour}
)

// AllIntervals lists every supported interval.
var AllIntervals = []Interval{
	Interval1s, Interval10s, Interval1m, Interval5m, Interval15m, Interval1h,
}

// Interval registry for lookup
var intervalRegistry = make(map[string]Interval)

func init() {
	for _, interval := range AllIntervals {
		intervalRegistry[interval.Name] = interval
	}
}

// GetInterval returns an interval by name.
func GetInterval(name string) (Interval, error) {
	interval, exists := intervalRegistry[name]
	if !exists {
		return Interval{}, fmt.Errorf("unsupported interval: %s", name)
	}
	return interval, nil
}

// CalculateBucketTime calculates the start time of the interval bucket.
func (i Interval) CalculateBucketTime(timestamp time.Time) time.Time {
	return timestamp.Truncate(i.Duration)
}

// GetBucketRange returns the start and end time of the interval bucket.
func (i Interval) GetBucketRange(timestamp time.Time) (start, end time.Time) {
	start = i.CalculateBucketTime(timestamp)
	end = start.Add(i.Duration)
	return start, end
}

// IsInBucket checks if two timestamps fall within the same bucket.
func (i Interval) IsInBucket(timestamp1, timestamp2 time.Time) bool {
	return i.CalculateBucketTime(timestamp1).Equal(i.CalculateBucketTime(timestamp2))
}
