package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadchandra19/tickpulse/internal/bootstrap"
	"github.com/muhammadchandra19/tickpulse/pkg/config"
	"github.com/muhammadchandra19/tickpulse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := bootstrap.Init(ctx, cfg, log)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "bootstrap"})
		os.Exit(1)
	}

	log.Info("tickpulse started",
		logger.Field{Key: "symbols", Value: cfg.Feed.Symbols},
		logger.Field{Key: "model", Value: cfg.Feed.Model},
		logger.Field{Key: "queueSize", Value: cfg.Queue.Size},
		logger.Field{Key: "watchedPairs", Value: cfg.Engine.WatchedPairs},
	)

	if err := b.Run(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "run"})
	}

	if err := b.Close(); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "export"})
	}

	log.Info("tickpulse stopped",
		logger.Field{Key: "ticksProcessed", Value: b.Engine.TicksProcessed()},
		logger.Field{Key: "signalsGenerated", Value: b.Engine.SignalsGenerated()},
		logger.Field{Key: "ticksDropped", Value: b.Simulator.TicksDropped()},
	)
}
