package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/internal/queue"
)

func testSimulator(symbols ...string) *Simulator {
	configs := make([]SymbolConfig, 0, len(symbols))
	for _, sym := range symbols {
		configs = append(configs, NewSymbolConfig(sym, 100, 0.02))
	}
	return NewSimulator(configs, ModelGBM, time.Millisecond, 42)
}

func TestSimulator_GeneratesValidTicks(t *testing.T) {
	s := testSimulator("AAPL", "MSFT")
	q, err := queue.NewSPSC[marketv1.Tick](256)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		s.GenerateTicks(q)
	}

	assert.Equal(t, uint64(100), s.TicksGenerated())
	assert.Equal(t, uint64(0), s.TicksDropped())

	for {
		tick, ok := q.Pop()
		if !ok {
			break
		}
		assert.True(t, tick.IsValid(), "tick %+v must satisfy the producer contract", tick)
		assert.LessOrEqual(t, tick.BidPrice, tick.AskPrice)
		assert.GreaterOrEqual(t, tick.LastSize, 1.0)
	}
}

func TestSimulator_PerSymbolSequenceIDs(t *testing.T) {
	s := testSimulator("AAPL", "MSFT")
	q, err := queue.NewSPSC[marketv1.Tick](1024)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		s.GenerateTicks(q)
	}

	next := map[string]uint64{"AAPL": 1, "MSFT": 1}
	for {
		tick, ok := q.Pop()
		if !ok {
			break
		}
		assert.Equal(t, next[tick.Symbol], tick.SequenceID,
			"sequence ids must increase per symbol starting at 1")
		next[tick.Symbol]++
	}
	assert.Equal(t, uint64(11), next["AAPL"])
	assert.Equal(t, uint64(11), next["MSFT"])
}

func TestSimulator_CountsDropsOnFullQueue(t *testing.T) {
	s := testSimulator("AAPL")
	q, err := queue.NewSPSC[marketv1.Tick](2) // capacity 1
	require.NoError(t, err)

	s.GenerateTicks(q) // fills the single slot
	s.GenerateTicks(q) // must drop

	assert.Equal(t, uint64(1), s.TicksGenerated())
	assert.Equal(t, uint64(1), s.TicksDropped())
	assert.InDelta(t, 1.0, s.DropRate(), 1e-9)
}

func TestSimulator_PriceModels(t *testing.T) {
	models := []PriceModel{ModelGBM, ModelOU, ModelJumpDiffusion, ModelMicrostructureNoise}

	for _, model := range models {
		t.Run(string(model), func(t *testing.T) {
			cfg := NewSymbolConfig("SYM", 100, 0.3)
			cfg.Drift = 0.05
			cfg.MeanReversion = 5.0
			cfg.JumpIntensity = 50.0
			s := NewSimulator([]SymbolConfig{cfg}, model, time.Millisecond, 7)
			q, err := queue.NewSPSC[marketv1.Tick](8192)
			require.NoError(t, err)

			for i := 0; i < 2000; i++ {
				s.GenerateTicks(q)
			}

			// Prices must stay positive and finite under every model.
			for {
				tick, ok := q.Pop()
				if !ok {
					break
				}
				require.Greater(t, tick.LastPrice, 0.0)
				require.False(t, tick.LastPrice != tick.LastPrice, "price must not be NaN")
			}
		})
	}
}

func TestSimulator_RunStopsOnCancel(t *testing.T) {
	s := testSimulator("AAPL")
	q, err := queue.NewSPSC[marketv1.Tick](4096)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx, q)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop after cancellation")
	}
	assert.Greater(t, s.TicksGenerated(), uint64(0))
}

func TestSimulator_ResetStats(t *testing.T) {
	s := testSimulator("AAPL")
	q, _ := queue.NewSPSC[marketv1.Tick](16)

	s.GenerateTicks(q)
	require.NotZero(t, s.TicksGenerated())

	s.ResetStats()
	assert.Equal(t, uint64(0), s.TicksGenerated())
	assert.Equal(t, uint64(0), s.TicksDropped())
	assert.Equal(t, 0.0, s.DropRate())
}
