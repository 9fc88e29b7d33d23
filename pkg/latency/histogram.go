// Package latency provides a lock-free bucketed histogram for end-to-end
// processing latency and throughput accounting. All counters are atomic, so
// writers on the hot path and readers on an observer thread never contend on
// a lock; readers see eventually-consistent snapshots.
package latency

import (
	"math"
	"sync/atomic"
	"time"
)

// BucketEdges are the histogram boundaries in microseconds. Bucket i covers
// [BucketEdges[i], BucketEdges[i+1]).
var BucketEdges = [NumBuckets + 1]uint64{0, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 50000, 1000000}

// NumBuckets is the number of histogram buckets.
const NumBuckets = 10

// Histogram accumulates latency samples into fixed buckets plus running
// totals, min and max. The zero value is not ready for use; call New.
type Histogram struct {
	buckets      [NumBuckets]atomic.Uint64
	totalSamples atomic.Uint64
	totalUs      atomic.Uint64
	minUs        atomic.Uint64
	maxUs        atomic.Uint64

	// Set once by the first sample, used for rate computation.
	started     atomic.Bool
	startNanos  atomic.Int64
	startSealed atomic.Bool
}

// Bucket describes one histogram bucket in a snapshot.
type Bucket struct {
	LowerBoundUs uint64
	UpperBoundUs uint64
	Count        uint64
	Percentage   float64
}

// New creates an empty histogram.
func New() *Histogram {
	h := &Histogram{}
	h.minUs.Store(math.MaxUint64)
	return h
}

// AddSample records the latency between start and end.
func (h *Histogram) AddSample(start, end time.Time) {
	us := end.Sub(start).Microseconds()
	if us < 0 {
		us = 0
	}
	h.AddSampleUs(uint64(us))
}

// AddSampleUs records a latency expressed in microseconds. Safe to call
// from any goroutine.
func (h *Histogram) AddSampleUs(us uint64) {
	// First sample seals the start of the observation window.
	if !h.started.Load() && h.started.CompareAndSwap(false, true) {
		h.startNanos.Store(time.Now().UnixNano())
		h.startSealed.Store(true)
	}

	bucket := NumBuckets - 1
	for i := 0; i < NumBuckets; i++ {
		if us < BucketEdges[i+1] {
			bucket = i
			break
		}
	}

	h.buckets[bucket].Add(1)
	h.totalSamples.Add(1)
	h.totalUs.Add(us)

	for {
		cur := h.minUs.Load()
		if us >= cur || h.minUs.CompareAndSwap(cur, us) {
			break
		}
	}
	for {
		cur := h.maxUs.Load()
		if us <= cur || h.maxUs.CompareAndSwap(cur, us) {
			break
		}
	}
}

// Reset clears all counters and the rate window.
func (h *Histogram) Reset() {
	for i := range h.buckets {
		h.buckets[i].Store(0)
	}
	h.totalSamples.Store(0)
	h.totalUs.Store(0)
	h.minUs.Store(math.MaxUint64)
	h.maxUs.Store(0)
	h.startSealed.Store(false)
	h.startNanos.Store(0)
	h.started.Store(false)
}

// TotalSamples returns the number of recorded samples.
func (h *Histogram) TotalSamples() uint64 {
	return h.totalSamples.Load()
}

// MeanUs returns the mean latency in microseconds.
func (h *Histogram) MeanUs() float64 {
	total := h.totalSamples.Load()
	if total == 0 {
		return 0
	}
	return float64(h.totalUs.Load()) / float64(total)
}

// MinUs returns the smallest recorded latency, 0 when empty.
func (h *Histogram) MinUs() uint64 {
	v := h.minUs.Load()
	if v == math.MaxUint64 {
		return 0
	}
	return v
}

// MaxUs returns the largest recorded latency.
func (h *Histogram) MaxUs() uint64 {
	return h.maxUs.Load()
}

// PercentileUs returns an approximate percentile (0-100) via cumulative scan
// with linear interpolation inside the selected bucket.
func (h *Histogram) PercentileUs(p float64) float64 {
	total := h.totalSamples.Load()
	if total == 0 {
		return 0
	}

	target := uint64(float64(total) * p / 100.0)
	var cumulative uint64

	for i := 0; i < NumBuckets; i++ {
		count := h.buckets[i].Load()
		cumulative += count
		if cumulative >= target {
			lower := float64(BucketEdges[i])
			upper := float64(BucketEdges[i+1])
			if count == 0 {
				return lower
			}
			prev := cumulative - count
			position := float64(target-prev) / float64(count)
			return lower + position*(upper-lower)
		}
	}

	return float64(BucketEdges[NumBuckets])
}

// P50Us returns the median latency estimate.
func (h *Histogram) P50Us() float64 { return h.PercentileUs(50) }

// P95Us returns the 95th percentile latency estimate.
func (h *Histogram) P95Us() float64 { return h.PercentileUs(95) }

// P99Us returns the 99th percentile latency estimate.
func (h *Histogram) P99Us() float64 { return h.PercentileUs(99) }

// SamplesPerSecond returns the observed sample rate since the first sample.
func (h *Histogram) SamplesPerSecond() float64 {
	if !h.startSealed.Load() {
		return 0
	}
	elapsed := time.Now().UnixNano() - h.startNanos.Load()
	if elapsed <= 0 {
		return 0
	}
	return float64(h.totalSamples.Load()) * float64(time.Second) / float64(elapsed)
}

// Snapshot returns the bucket list with counts and percentages.
func (h *Histogram) Snapshot() []Bucket {
	total := h.totalSamples.Load()
	out := make([]Bucket, 0, NumBuckets)

	for i := 0; i < NumBuckets; i++ {
		count := h.buckets[i].Load()
		pct := 0.0
		if total > 0 {
			pct = float64(count) * 100.0 / float64(total)
		}
		out = append(out, Bucket{
			LowerBoundUs: BucketEdges[i],
			UpperBoundUs: BucketEdges[i+1],
			Count:        count,
			Percentage:   pct,
		})
	}

	return out
}
