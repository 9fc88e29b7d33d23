// Package engine implements the routing and rule-evaluation core: it owns
// the per-symbol and per-pair rule state, drives every rule on each tick,
// and emits signal events through the configured sink.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/internal/queue"
	"github.com/muhammadchandra19/tickpulse/internal/rules"
	"github.com/muhammadchandra19/tickpulse/pkg/latency"
	"github.com/muhammadchandra19/tickpulse/pkg/logger"
)

// Confidence assigned per signal type.
const (
	confidenceZScoreBreak      = 0.95
	confidenceVolumeSpike      = 0.90
	confidenceCorrelationBreak = 0.88
	confidencePairTradeEntry   = 0.85
)

// idleSleep is how long the consumer loop yields when the queue is empty.
const idleSleep = 20 * time.Microsecond

// watchedPair holds one registered symbol pair in canonical order
// (A = lexicographically smaller symbol).
type watchedPair struct {
	a, b string
	key  string
}

// Engine routes ticks through the signal rules. Process must be called from
// a single goroutine (the consumer); none of the per-symbol state is locked.
// Configuration methods must happen-before the first Process call.
type Engine struct {
	// Per-symbol rules, created lazily on first observation.
	zscoreRules  map[string]*rules.ZScore
	volumeRules  map[string]*rules.Volume
	meanRevRules map[string]*rules.MeanReversion

	// Per-pair rules, created at pair registration.
	correlationRules map[string]*rules.CorrelationBreak
	watchedPairs     []watchedPair

	// Most recent tick per symbol; unbounded, process lifetime.
	latestTicks map[string]marketv1.Tick

	sink          marketv1.SignalSink
	tickObserver  func(marketv1.Tick)
	signalCounter atomic.Uint64

	latencyHist    *latency.Histogram
	ticksProcessed atomic.Uint64

	opts   *Options
	logger *logger.Logger
}

// New creates an engine with the given options. A nil options pointer uses
// the defaults.
func New(opts *Options, log *logger.Logger) *Engine {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Engine{
		zscoreRules:      make(map[string]*rules.ZScore),
		volumeRules:      make(map[string]*rules.Volume),
		meanRevRules:     make(map[string]*rules.MeanReversion),
		correlationRules: make(map[string]*rules.CorrelationBreak),
		latestTicks:      make(map[string]marketv1.Tick),
		latencyHist:      latency.New(),
		opts:             opts,
		logger:           log,
	}
}

// SetSignalSink installs the sink that receives emitted events. Must be
// called before processing starts; the sink is invoked synchronously on the
// consumer goroutine and must not block.
func (e *Engine) SetSignalSink(sink marketv1.SignalSink) {
	e.sink = sink
}

// SetTickObserver installs a hook invoked with every processed tick, after
// rule evaluation. Used by the archiver to collect ticks for OHLC
// aggregation. Same contract as the sink: pre-start only, must not block.
func (e *Engine) SetTickObserver(observer func(marketv1.Tick)) {
	e.tickObserver = observer
}

// AddWatchedPair registers an unordered symbol pair for correlation
// tracking. The correlation rule is created here, not lazily, so pairs must
// be registered before the first tick that concerns either symbol.
// Duplicate registrations are ignored.
func (e *Engine) AddWatchedPair(symbolA, symbolB string) {
	if symbolA == symbolB || symbolA == "" || symbolB == "" {
		return
	}
	if symbolA > symbolB {
		symbolA, symbolB = symbolB, symbolA
	}
	key := symbolA + "|" + symbolB
	if _, exists := e.correlationRules[key]; exists {
		return
	}

	e.watchedPairs = append(e.watchedPairs, watchedPair{a: symbolA, b: symbolB, key: key})
	e.correlationRules[key] = rules.NewCorrelationBreak(e.opts.CorrelationThreshold, e.opts.CorrelationMinObs)
}

// Process runs one tick through every applicable rule, in a fixed order:
// z-score, volume, mean reversion, then each watched pair containing the
// symbol. Each firing rule emits its own signal. Consumer goroutine only.
func (e *Engine) Process(tick marketv1.Tick) {
	// The pair rules below must see this tick on its own side.
	e.latestTicks[tick.Symbol] = tick

	e.ensureRules(tick.Symbol)
	e.processSingleSymbol(tick)
	e.processCrossSymbol(tick)

	if e.tickObserver != nil {
		e.tickObserver(tick)
	}

	e.latencyHist.AddSample(tick.Timestamp, time.Now())
	e.ticksProcessed.Add(1)
}

// Run drains ticks from the queue until the context is cancelled, then
// consumes whatever is still buffered before returning. The loop yields
// briefly when the queue is empty instead of spinning hot.
func (e *Engine) Run(ctx context.Context, q *queue.SPSC[marketv1.Tick]) {
	if e.logger != nil {
		e.logger.Info("engine consumer started")
	}

	for {
		select {
		case <-ctx.Done():
			// Drain remaining buffered ticks to a natural boundary.
			for {
				tick, ok := q.Pop()
				if !ok {
					if e.logger != nil {
						e.logger.Info("engine consumer stopped",
							logger.Field{Key: "ticksProcessed", Value: e.TicksProcessed()},
							logger.Field{Key: "signalsGenerated", Value: e.SignalsGenerated()},
						)
					}
					return
				}
				e.Process(tick)
			}
		default:
			tick, ok := q.Pop()
			if !ok {
				time.Sleep(idleSleep)
				continue
			}
			e.Process(tick)
		}
	}
}

// TicksProcessed returns the number of ticks run through Process.
func (e *Engine) TicksProcessed() uint64 {
	return e.ticksProcessed.Load()
}

// SignalsGenerated returns the number of signals emitted so far.
func (e *Engine) SignalsGenerated() uint64 {
	return e.signalCounter.Load()
}

// LatencyHistogram exposes the per-tick latency accounting.
func (e *Engine) LatencyHistogram() *latency.Histogram {
	return e.latencyHist
}

// ProcessingRate returns ticks per second since the first processed tick.
func (e *Engine) ProcessingRate() float64 {
	return e.latencyHist.SamplesPerSecond()
}

// Correlation returns the current correlation estimate for a registered
// pair, 0 if the pair is unknown.
func (e *Engine) Correlation(symbolA, symbolB string) float64 {
	if symbolA > symbolB {
		symbolA, symbolB = symbolB, symbolA
	}
	rule, ok := e.correlationRules[symbolA+"|"+symbolB]
	if !ok {
		return 0
	}
	return rule.Correlation()
}

// ResetStats clears counters, the latency histogram and every rule's
// accumulated state. Consumer goroutine only, like Process.
func (e *Engine) ResetStats() {
	e.ticksProcessed.Store(0)
	e.signalCounter.Store(0)
	e.latencyHist.Reset()

	for _, r := range e.zscoreRules {
		r.Reset()
	}
	for _, r := range e.volumeRules {
		r.Reset()
	}
	for _, r := range e.meanRevRules {
		r.Reset()
	}
	for _, r := range e.correlationRules {
		r.Reset()
	}
}

// ensureRules lazily creates this symbol's single-symbol rules.
func (e *Engine) ensureRules(symbol string) {
	if _, ok := e.zscoreRules[symbol]; !ok {
		e.zscoreRules[symbol] = rules.NewZScore(e.opts.ZScoreThreshold)
	}
	if _, ok := e.volumeRules[symbol]; !ok {
		e.volumeRules[symbol] = rules.NewVolume(e.opts.VolumeThreshold)
	}
	if _, ok := e.meanRevRules[symbol]; !ok {
		e.meanRevRules[symbol] = rules.NewMeanReversion(e.opts.FastWindow, e.opts.SlowWindow, e.opts.MeanRevThreshold)
	}
}

func (e *Engine) processSingleSymbol(tick marketv1.Tick) {
	zscore := e.zscoreRules[tick.Symbol]
	zscore.Add(tick.LastPrice)
	if strength, fires := zscore.Evaluate(); fires {
		e.emit(marketv1.SignalZScoreBreak, tick.Symbol, "", strength, confidenceZScoreBreak, tick.Timestamp)
	}

	volume := e.volumeRules[tick.Symbol]
	volume.Add(tick.LastSize)
	if strength, fires := volume.Evaluate(); fires {
		e.emit(marketv1.SignalVolumeSpike, tick.Symbol, "", strength, confidenceVolumeSpike, tick.Timestamp)
	}

	meanRev := e.meanRevRules[tick.Symbol]
	meanRev.Add(tick.LastPrice)
	if strength, fires := meanRev.Evaluate(); fires {
		e.emit(marketv1.SignalPairTradeEntry, tick.Symbol, "", strength, confidencePairTradeEntry, tick.Timestamp)
	}
}

func (e *Engine) processCrossSymbol(tick marketv1.Tick) {
	for _, pair := range e.watchedPairs {
		if pair.a != tick.Symbol && pair.b != tick.Symbol {
			continue
		}

		tickA, okA := e.latestTicks[pair.a]
		tickB, okB := e.latestTicks[pair.b]
		if !okA || !okB {
			continue
		}

		rule := e.correlationRules[pair.key]
		rule.AddPair(tickA.LastPrice, tickB.LastPrice)
		if strength, fires := rule.Evaluate(); fires {
			e.emit(marketv1.SignalCorrelationBreak, pair.a, pair.b, strength, confidenceCorrelationBreak, tick.Timestamp)
		}
	}
}

// emit builds the event and hands it to the sink. Without a sink, emission
// is skipped entirely and the signal counter does not advance.
func (e *Engine) emit(signalType marketv1.SignalType, primary, secondary string, strength, confidence float64, eventTime time.Time) {
	if e.sink == nil {
		return
	}

	e.sink.Publish(marketv1.SignalEvent{
		Type:            signalType,
		PrimarySymbol:   primary,
		SecondarySymbol: secondary,
		SignalStrength:  strength,
		Confidence:      confidence,
		EventTime:       eventTime,
		GenerationTime:  time.Now(),
		SignalID:        e.signalCounter.Add(1),
	})
}
