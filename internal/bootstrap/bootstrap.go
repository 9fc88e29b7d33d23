// Package bootstrap wires the pipeline: config, logger, queue, feed
// producer, engine consumer, sinks, archiver and telemetry.
package bootstrap

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/muhammadchandra19/tickpulse/internal/app/engine"
	"github.com/muhammadchandra19/tickpulse/internal/dashboard"
	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/internal/feed"
	questdbohlc "github.com/muhammadchandra19/tickpulse/internal/infrastructure/questdb/ohlc"
	questdbsignal "github.com/muhammadchandra19/tickpulse/internal/infrastructure/questdb/signal"
	"github.com/muhammadchandra19/tickpulse/internal/metrics"
	"github.com/muhammadchandra19/tickpulse/internal/queue"
	"github.com/muhammadchandra19/tickpulse/internal/sink"
	"github.com/muhammadchandra19/tickpulse/internal/usecase/archive"
	"github.com/muhammadchandra19/tickpulse/pkg/config"
	"github.com/muhammadchandra19/tickpulse/pkg/interval"
	"github.com/muhammadchandra19/tickpulse/pkg/logger"
	"github.com/muhammadchandra19/tickpulse/pkg/questdb"
	"github.com/muhammadchandra19/tickpulse/pkg/redis"
)

// dashboardRefresh is how often the terminal dashboard and telemetry gauges
// update.
const dashboardRefresh = time.Second

// Bootstrap holds the wired pipeline components.
type Bootstrap struct {
	Config    *config.Config
	Logger    *logger.Logger
	Queue     *queue.SPSC[marketv1.Tick]
	Engine    *engine.Engine
	Simulator *feed.Simulator

	csvSink   *sink.CSV
	redisSink *sink.Redis
	kafkaSink *sink.Kafka
	archiver  *archive.Archiver
}

// Init builds every component from configuration. External connections
// (redis, questdb) are only dialed when the matching sink is enabled.
func Init(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Bootstrap, error) {
	q, err := queue.NewSPSC[marketv1.Tick](cfg.Queue.Size)
	if err != nil {
		return nil, err
	}

	b := &Bootstrap{
		Config: cfg,
		Logger: log,
		Queue:  q,
	}

	if err := b.registerEngine(); err != nil {
		return nil, err
	}
	b.registerFeed()
	if err := b.registerSinks(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Bootstrap) registerEngine() error {
	cfg := b.Config.Engine

	opts := &engine.Options{
		ZScoreThreshold:      cfg.ZScoreThreshold,
		VolumeThreshold:      cfg.VolumeThreshold,
		CorrelationThreshold: cfg.CorrelationThreshold,
		CorrelationMinObs:    cfg.CorrelationMinObs,
		FastWindow:           cfg.FastWindow,
		SlowWindow:           cfg.SlowWindow,
		MeanRevThreshold:     cfg.MeanRevThreshold,
	}
	b.Engine = engine.New(opts, b.Logger)

	pairs, err := cfg.ParsedPairs()
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		b.Engine.AddWatchedPair(pair[0], pair[1])
	}

	return nil
}

func (b *Bootstrap) registerFeed() {
	cfg := b.Config.Feed

	symbols := make([]feed.SymbolConfig, 0, len(cfg.Symbols))
	for _, sym := range cfg.Symbols {
		sc := feed.NewSymbolConfig(sym, cfg.InitialPrice, cfg.Volatility)
		sc.Drift = cfg.Drift
		sc.MeanReversion = cfg.MeanReversion
		sc.JumpIntensity = cfg.JumpIntensity
		sc.BidAskSpread = cfg.BidAskSpread
		sc.TickSize = cfg.TickSize
		symbols = append(symbols, sc)
	}

	b.Simulator = feed.NewSimulator(
		symbols,
		feed.PriceModel(cfg.Model),
		time.Duration(cfg.TickIntervalUs)*time.Microsecond,
		cfg.Seed,
	)
}

func (b *Bootstrap) registerSinks(ctx context.Context) error {
	cfg := b.Config.Sink
	sinks := []marketv1.SignalSink{metrics.NewSink()}

	if cfg.CSVPath != "" {
		b.csvSink = sink.NewCSV(cfg.CSVPath)
		sinks = append(sinks, b.csvSink)
	}

	if cfg.LogSignals {
		sinks = append(sinks, sink.NewLog(b.Logger))
	}

	if cfg.EnableRedis {
		client, err := redis.NewClient(ctx, b.Config.Redis)
		if err != nil {
			return err
		}
		b.redisSink = sink.NewRedis(client, cfg.RedisChannel, b.Logger)
		sinks = append(sinks, b.redisSink)
	}

	if cfg.EnableKafka {
		writer := sink.NewKafkaWriter(b.Config.Kafka.Brokers, b.Config.Kafka.Topic)
		b.kafkaSink = sink.NewKafka(writer, b.Logger)
		sinks = append(sinks, b.kafkaSink)
	}

	if cfg.EnableQuestDB {
		client, err := questdb.NewClient(ctx, b.Config.QuestDB)
		if err != nil {
			return err
		}

		ival, err := interval.GetInterval(b.Config.Archive.OHLCInterval)
		if err != nil {
			return err
		}

		b.archiver = archive.New(
			questdbsignal.NewRepository(client),
			questdbohlc.NewRepository(client),
			ival,
			b.Config.Archive.BatchSize,
			b.Logger,
		)
		sinks = append(sinks, b.archiver)
		b.Engine.SetTickObserver(b.archiver.ObserveTick)
	}

	b.Engine.SetSignalSink(sink.NewMulti(sinks...))
	return nil
}

// Run starts the producer, consumer and observer goroutines and blocks
// until the context is cancelled and every role has drained.
func (b *Bootstrap) Run(ctx context.Context) error {
	var srvShutdown func()
	if b.Config.Metrics.Enabled {
		srv := metrics.Serve(b.Config.Metrics.Addr)
		srvShutdown = func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}
	}

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.Simulator.Run(runCtx, b.Queue)
		return nil
	})

	g.Go(func() error {
		b.Engine.Run(runCtx, b.Queue)
		return nil
	})

	if b.redisSink != nil {
		g.Go(func() error {
			b.redisSink.Run(runCtx)
			return nil
		})
	}
	if b.kafkaSink != nil {
		g.Go(func() error {
			b.kafkaSink.Run(runCtx)
			return nil
		})
	}
	if b.archiver != nil {
		g.Go(func() error {
			b.archiver.Run(runCtx)
			return nil
		})
	}

	g.Go(func() error {
		b.observe(runCtx)
		return nil
	})

	err := g.Wait()
	if srvShutdown != nil {
		srvShutdown()
	}
	return err
}

// observe refreshes the dashboard and prometheus gauges until shutdown.
func (b *Bootstrap) observe(ctx context.Context) {
	d := dashboard.New(os.Stdout)
	ticker := time.NewTicker(dashboardRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hist := b.Engine.LatencyHistogram()

			metrics.TicksProcessed.Set(float64(b.Engine.TicksProcessed()))
			metrics.TicksDropped.Set(float64(b.Simulator.TicksDropped()))
			metrics.QueueFillRatio.Set(b.Queue.FillRatio())
			metrics.ProcessingRate.Set(b.Engine.ProcessingRate())
			metrics.LatencyMeanUs.Set(hist.MeanUs())
			metrics.LatencyP99Us.Set(hist.P99Us())

			d.Render(dashboard.Stats{
				TicksProcessed:   b.Engine.TicksProcessed(),
				SignalsGenerated: b.Engine.SignalsGenerated(),
				TicksGenerated:   b.Simulator.TicksGenerated(),
				TicksDropped:     b.Simulator.TicksDropped(),
				QueueFillRatio:   b.Queue.FillRatio(),
				Histogram:        hist,
			})
		}
	}
}

// Close exports the CSV artifacts and renders the final histogram. Call
// after Run has returned.
func (b *Bootstrap) Close() error {
	if b.csvSink != nil {
		if err := b.csvSink.Close(); err != nil {
			return err
		}
		b.Logger.Info("signals exported",
			logger.Field{Key: "path", Value: b.Config.Sink.CSVPath},
			logger.Field{Key: "count", Value: b.csvSink.Len()},
		)
	}

	if b.Config.Sink.LatencyCSVPath != "" {
		if err := sink.WriteLatencyCSV(b.Engine.LatencyHistogram(), b.Config.Sink.LatencyCSVPath); err != nil {
			return err
		}
	}

	dashboard.New(os.Stdout).RenderHistogram(b.Engine.LatencyHistogram())
	return nil
}
