// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/muhammadchandra19/tickpulse/pkg/questdb"
	"github.com/muhammadchandra19/tickpulse/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App     AppConfig      `envPrefix:"APP_"`
	Queue   QueueConfig    `envPrefix:"QUEUE_"`
	Engine  EngineConfig   `envPrefix:"ENGINE_"`
	Feed    FeedConfig     `envPrefix:"FEED_"`
	Sink    SinkConfig     `envPrefix:"SINK_"`
	Archive ArchiveConfig  `envPrefix:"ARCHIVE_"`
	Metrics MetricsConfig  `envPrefix:"METRICS_"`
	QuestDB questdb.Config `envPrefix:"QUESTDB_"`
	Redis   redis.Config   `envPrefix:"REDIS_"`
	Kafka   KafkaConfig    `envPrefix:"KAFKA_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"tickpulse"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// QueueConfig configures the tick transport between producer and consumer.
type QueueConfig struct {
	// Size must be a power of two; the queue holds Size-1 ticks.
	Size int `env:"SIZE" envDefault:"65536"`
}

// EngineConfig configures signal thresholds and watched pairs.
type EngineConfig struct {
	ZScoreThreshold      float64 `env:"ZSCORE_THRESHOLD" envDefault:"2.5"`
	VolumeThreshold      float64 `env:"VOLUME_THRESHOLD" envDefault:"3.0"`
	CorrelationThreshold float64 `env:"CORRELATION_THRESHOLD" envDefault:"0.3"`
	CorrelationMinObs    int     `env:"CORRELATION_MIN_OBS" envDefault:"50"`
	FastWindow           int     `env:"FAST_WINDOW" envDefault:"10"`
	SlowWindow           int     `env:"SLOW_WINDOW" envDefault:"50"`
	MeanRevThreshold     float64 `env:"MEANREV_THRESHOLD" envDefault:"2.0"`

	// WatchedPairs holds entries like "AAPL:MSFT".
	WatchedPairs []string `env:"WATCHED_PAIRS" envSeparator:"," envDefault:""`
}

// FeedConfig configures the synthetic tick producer.
type FeedConfig struct {
	Symbols        []string `env:"SYMBOLS" envSeparator:"," envDefault:"AAPL,MSFT,GOOG,AMZN"`
	Model          string   `env:"MODEL" envDefault:"gbm"` // gbm, ou, jump, noise
	TickIntervalUs int      `env:"TICK_INTERVAL_US" envDefault:"1000"`
	InitialPrice   float64  `env:"INITIAL_PRICE" envDefault:"100.0"`
	Volatility     float64  `env:"VOLATILITY" envDefault:"0.02"`
	Drift          float64  `env:"DRIFT" envDefault:"0.0"`
	MeanReversion  float64  `env:"MEAN_REVERSION" envDefault:"2.0"`
	JumpIntensity  float64  `env:"JUMP_INTENSITY" envDefault:"10.0"`
	BidAskSpread   float64  `env:"BID_ASK_SPREAD" envDefault:"0.001"`
	TickSize       float64  `env:"TICK_SIZE" envDefault:"0.01"`
	Seed           int64    `env:"SEED" envDefault:"0"`
}

// SinkConfig selects where signal events are delivered.
type SinkConfig struct {
	CSVPath        string `env:"CSV_PATH" envDefault:"data/signals.csv"`
	LatencyCSVPath string `env:"LATENCY_CSV_PATH" envDefault:"data/latency_histogram.csv"`
	LogSignals     bool   `env:"LOG_SIGNALS" envDefault:"false"`
	EnableRedis    bool   `env:"ENABLE_REDIS" envDefault:"false"`
	RedisChannel   string `env:"REDIS_CHANNEL" envDefault:"tickpulse.signals"`
	EnableKafka    bool   `env:"ENABLE_KAFKA" envDefault:"false"`
	EnableQuestDB  bool   `env:"ENABLE_QUESTDB" envDefault:"false"`
}

// ArchiveConfig configures tick/signal archival and OHLC aggregation.
type ArchiveConfig struct {
	OHLCInterval string `env:"OHLC_INTERVAL" envDefault:"1s"`
	BatchSize    int    `env:"BATCH_SIZE" envDefault:"512"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Addr    string `env:"ADDR" envDefault:":9100"`
}

// KafkaConfig represents the Kafka signal sink configuration.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"tickpulse.signals"`
}

// ParsedPairs splits WatchedPairs entries into symbol tuples.
func (c EngineConfig) ParsedPairs() ([][2]string, error) {
	pairs := make([][2]string, 0, len(c.WatchedPairs))
	for _, raw := range c.WatchedPairs {
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid watched pair %q, want A:B", raw)
		}
		pairs = append(pairs, [2]string{parts[0], parts[1]})
	}
	return pairs, nil
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
