// Package archive persists signal events and per-symbol OHLC bars to
// QuestDB. The archiver sits behind buffered channels: the consumer thread
// hands off ticks and signals without blocking, and a background goroutine
// batches the database writes.
package archive

import (
	"context"
	"sync/atomic"
	"time"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/internal/infrastructure/questdb/ohlc"
	"github.com/muhammadchandra19/tickpulse/internal/infrastructure/questdb/signal"
	"github.com/muhammadchandra19/tickpulse/pkg/interval"
	"github.com/muhammadchandra19/tickpulse/pkg/logger"
)

const (
	tickBuffer   = 16384
	signalBuffer = 4096
)

// SignalStore is the subset of the signal repository the archiver needs.
type SignalStore interface {
	StoreBatch(ctx context.Context, signals []*signal.Signal) error
}

// OHLCStore is the subset of the OHLC repository the archiver needs.
type OHLCStore interface {
	StoreBatch(ctx context.Context, bars []*ohlc.OHLC) error
}

// bucketState accumulates one symbol's ticks for the open bucket.
type bucketState struct {
	bucket time.Time
	ticks  []interval.TickData
}

// Archiver buffers signals and ticks and flushes them to storage in
// batches. It implements marketv1.SignalSink for the signal side;
// ObserveTick feeds the OHLC side.
type Archiver struct {
	signalStore SignalStore
	ohlcStore   OHLCStore
	interval    interval.Interval
	batchSize   int
	logger      *logger.Logger

	signals chan marketv1.SignalEvent
	ticks   chan marketv1.Tick
	dropped atomic.Uint64

	// background goroutine state
	pending []*signal.Signal
	buckets map[string]*bucketState
}

// New creates an archiver flushing signal batches of batchSize and OHLC
// bars on the given interval.
func New(signalStore SignalStore, ohlcStore OHLCStore, ival interval.Interval, batchSize int, log *logger.Logger) *Archiver {
	if batchSize <= 0 {
		batchSize = 512
	}
	return &Archiver{
		signalStore: signalStore,
		ohlcStore:   ohlcStore,
		interval:    ival,
		batchSize:   batchSize,
		logger:      log,
		signals:     make(chan marketv1.SignalEvent, signalBuffer),
		ticks:       make(chan marketv1.Tick, tickBuffer),
		buckets:     make(map[string]*bucketState),
	}
}

// Publish enqueues one signal event for archival. Never blocks.
func (a *Archiver) Publish(event marketv1.SignalEvent) {
	select {
	case a.signals <- event:
	default:
		a.dropped.Add(1)
	}
}

// ObserveTick enqueues one tick for OHLC aggregation. Never blocks.
func (a *Archiver) ObserveTick(tick marketv1.Tick) {
	select {
	case a.ticks <- tick:
	default:
		a.dropped.Add(1)
	}
}

// Dropped returns the number of records discarded due to full buffers.
func (a *Archiver) Dropped() uint64 {
	return a.dropped.Load()
}

// Run consumes buffered records until the context is cancelled, then drains
// and flushes everything, including the still-open OHLC buckets.
func (a *Archiver) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			a.drain()
			a.flushSignals(context.Background())
			a.flushAllBuckets(context.Background())
			return
		case event := <-a.signals:
			a.pending = append(a.pending, signal.FromEvent(event))
			if len(a.pending) >= a.batchSize {
				a.flushSignals(ctx)
			}
		case tick := <-a.ticks:
			a.observe(ctx, tick)
		}
	}
}

func (a *Archiver) drain() {
	for {
		select {
		case event := <-a.signals:
			a.pending = append(a.pending, signal.FromEvent(event))
		case tick := <-a.ticks:
			a.observe(context.Background(), tick)
		default:
			return
		}
	}
}

// observe folds one tick into its symbol's open bucket, closing the bucket
// out to storage when the tick starts a new one.
func (a *Archiver) observe(ctx context.Context, tick marketv1.Tick) {
	bucket := a.interval.CalculateBucketTime(tick.Timestamp)

	state, ok := a.buckets[tick.Symbol]
	if !ok {
		state = &bucketState{bucket: bucket}
		a.buckets[tick.Symbol] = state
	} else if !state.bucket.Equal(bucket) {
		a.closeBucket(ctx, tick.Symbol, state)
		state.bucket = bucket
		state.ticks = state.ticks[:0]
	}

	state.ticks = append(state.ticks, interval.TickData{
		Timestamp: tick.Timestamp,
		Price:     tick.LastPrice,
		Volume:    tick.LastSize,
	})
}

func (a *Archiver) closeBucket(ctx context.Context, symbol string, state *bucketState) {
	if len(state.ticks) == 0 {
		return
	}

	data := a.interval.AggregateOHLC(state.ticks, state.bucket)
	bar := ohlc.FromAggregate(symbol, data)
	if err := a.ohlcStore.StoreBatch(ctx, []*ohlc.OHLC{bar}); err != nil && a.logger != nil {
		a.logger.Error(err, logger.Field{Key: "action", Value: "store_ohlc"},
			logger.Field{Key: "symbol", Value: symbol})
	}
}

func (a *Archiver) flushSignals(ctx context.Context) {
	if len(a.pending) == 0 {
		return
	}

	if err := a.signalStore.StoreBatch(ctx, a.pending); err != nil && a.logger != nil {
		a.logger.Error(err, logger.Field{Key: "action", Value: "store_signals"},
			logger.Field{Key: "count", Value: len(a.pending)})
	}
	a.pending = a.pending[:0]
}

func (a *Archiver) flushAllBuckets(ctx context.Context) {
	for symbol, state := range a.buckets {
		a.closeBucket(ctx, symbol, state)
		state.ticks = state.ticks[:0]
	}
}
