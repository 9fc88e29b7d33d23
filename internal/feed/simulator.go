// Package feed implements the synthetic market-data producer: a configurable
// stochastic process that pushes ticks into the SPSC queue on its own
// goroutine. A full queue is recorded as a drop, never a stall.
package feed

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/internal/queue"
)

// PriceModel selects the stochastic process driving each symbol's price.
type PriceModel string

const (
	// ModelGBM is geometric brownian motion: dS = mu*S dt + sigma*S dW.
	ModelGBM PriceModel = "gbm"
	// ModelOU is an Ornstein-Uhlenbeck process reverting to the initial price.
	ModelOU PriceModel = "ou"
	// ModelJumpDiffusion is GBM plus Poisson jumps.
	ModelJumpDiffusion PriceModel = "jump"
	// ModelMicrostructureNoise is a high-frequency noise model around a slow drift.
	ModelMicrostructureNoise PriceModel = "noise"
)

// millisPerYear converts tick intervals to the annualized dt the models use.
const millisPerYear = 365.25 * 24 * 60 * 60 * 1000

// SymbolConfig describes one simulated symbol.
type SymbolConfig struct {
	Symbol        string
	InitialPrice  float64
	Volatility    float64 // annualized, e.g. 0.02
	Drift         float64 // annualized
	MeanReversion float64 // OU reversion speed
	JumpIntensity float64 // expected jumps per year
	JumpMean      float64
	JumpStd       float64
	BidAskSpread  float64 // relative, e.g. 0.001
	TickSize      float64
}

// NewSymbolConfig returns a config with the usual demo defaults applied.
func NewSymbolConfig(symbol string, price, volatility float64) SymbolConfig {
	return SymbolConfig{
		Symbol:       symbol,
		InitialPrice: price,
		Volatility:   volatility,
		JumpStd:      0.01,
		BidAskSpread: 0.001,
		TickSize:     0.01,
	}
}

// Simulator generates ticks for a set of symbols. Run drives it from a
// single producer goroutine; the statistics accessors are safe from any
// goroutine.
type Simulator struct {
	symbols []SymbolConfig
	prices  []float64
	seqs    []uint64

	rng          *rand.Rand
	model        PriceModel
	tickInterval time.Duration

	ticksGenerated atomic.Uint64
	ticksDropped   atomic.Uint64
}

// NewSimulator creates a simulator. Seed 0 derives a seed from the clock.
func NewSimulator(symbols []SymbolConfig, model PriceModel, tickInterval time.Duration, seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	prices := make([]float64, len(symbols))
	for i, sc := range symbols {
		prices[i] = sc.InitialPrice
	}

	return &Simulator{
		symbols:      symbols,
		prices:       prices,
		seqs:         make([]uint64, len(symbols)),
		rng:          rand.New(rand.NewSource(seed)),
		model:        model,
		tickInterval: tickInterval,
	}
}

// GenerateTicks produces one tick per symbol and pushes each into the
// queue. Ticks that do not fit are counted as dropped.
func (s *Simulator) GenerateTicks(q *queue.SPSC[marketv1.Tick]) {
	now := time.Now()
	for i := range s.symbols {
		tick := s.generateTick(i, now)
		if q.Push(tick) {
			s.ticksGenerated.Add(1)
		} else {
			s.ticksDropped.Add(1)
		}
	}
}

// Run generates ticks at the configured interval until the context is
// cancelled. Producer goroutine only.
func (s *Simulator) Run(ctx context.Context, q *queue.SPSC[marketv1.Tick]) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.GenerateTicks(q)
		}
	}
}

// TicksGenerated returns the number of ticks successfully pushed.
func (s *Simulator) TicksGenerated() uint64 {
	return s.ticksGenerated.Load()
}

// TicksDropped returns the number of ticks rejected by a full queue.
func (s *Simulator) TicksDropped() uint64 {
	return s.ticksDropped.Load()
}

// DropRate returns dropped/generated, 0 when nothing was generated.
func (s *Simulator) DropRate() float64 {
	generated := s.TicksGenerated()
	if generated == 0 {
		return 0
	}
	return float64(s.TicksDropped()) / float64(generated)
}

// ResetStats clears the generated/dropped counters.
func (s *Simulator) ResetStats() {
	s.ticksGenerated.Store(0)
	s.ticksDropped.Store(0)
}

// Symbols returns the configured symbols.
func (s *Simulator) Symbols() []SymbolConfig {
	return s.symbols
}

func (s *Simulator) generateTick(idx int, timestamp time.Time) marketv1.Tick {
	cfg := &s.symbols[idx]

	s.updatePrice(idx)
	price := roundToTickSize(s.prices[idx], cfg.TickSize)
	s.prices[idx] = price

	halfSpread := price * cfg.BidAskSpread * 0.5
	bid := roundToTickSize(price-halfSpread, cfg.TickSize)
	ask := roundToTickSize(price+halfSpread, cfg.TickSize)
	if bid <= 0 {
		bid = cfg.TickSize
	}
	if ask < bid {
		ask = bid
	}

	s.seqs[idx]++

	return marketv1.Tick{
		Symbol:     cfg.Symbol,
		LastPrice:  price,
		BidPrice:   bid,
		AskPrice:   ask,
		LastSize:   s.generateVolume(),
		Timestamp:  timestamp,
		SequenceID: s.seqs[idx],
	}
}

func (s *Simulator) updatePrice(idx int) {
	cfg := &s.symbols[idx]
	price := s.prices[idx]

	dt := float64(s.tickInterval.Milliseconds()) / millisPerYear
	if dt <= 0 {
		dt = float64(s.tickInterval.Microseconds()) / (millisPerYear * 1000)
	}
	z := s.rng.NormFloat64()

	switch s.model {
	case ModelOU:
		price += cfg.MeanReversion*(cfg.InitialPrice-price)*dt +
			cfg.Volatility*math.Sqrt(dt)*z

	case ModelJumpDiffusion:
		price += cfg.Drift*price*dt + cfg.Volatility*price*math.Sqrt(dt)*z
		if cfg.JumpIntensity > 0 && s.rng.Float64() < cfg.JumpIntensity*dt {
			jump := cfg.JumpMean + cfg.JumpStd*s.rng.NormFloat64()
			price *= math.Exp(jump)
		}

	case ModelMicrostructureNoise:
		price += cfg.Volatility*math.Sqrt(dt)*z*price +
			cfg.TickSize*s.rng.NormFloat64()*0.1

	default: // ModelGBM
		price += cfg.Drift*price*dt + cfg.Volatility*price*math.Sqrt(dt)*z
	}

	if price < cfg.TickSize {
		price = cfg.TickSize
	}
	s.prices[idx] = price
}

func (s *Simulator) generateVolume() float64 {
	v := s.rng.ExpFloat64() * 100.0
	if v < 1 {
		v = 1
	}
	return v
}

func roundToTickSize(price, tickSize float64) float64 {
	if tickSize <= 0 {
		return price
	}
	return math.Round(price/tickSize) * tickSize
}
