package sink

import (
	"context"
	"encoding/json"
	"sync/atomic"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/pkg/logger"
	"github.com/muhammadchandra19/tickpulse/pkg/redis"
)

// redisBuffer is how many events the redis sink buffers before dropping.
const redisBuffer = 1024

// Redis publishes signal events as JSON to a pub/sub channel. Publish hands
// the event to a buffered channel and never blocks; a background goroutine
// does the actual network I/O. Events are dropped when the buffer is full.
type Redis struct {
	pub     redis.Publisher
	channel string
	logger  *logger.Logger

	events  chan marketv1.SignalEvent
	dropped atomic.Uint64
}

// NewRedis creates a redis sink publishing to the given channel.
func NewRedis(pub redis.Publisher, channel string, log *logger.Logger) *Redis {
	return &Redis{
		pub:     pub,
		channel: channel,
		logger:  log,
		events:  make(chan marketv1.SignalEvent, redisBuffer),
	}
}

// Publish enqueues one event for delivery. Never blocks.
func (s *Redis) Publish(event marketv1.SignalEvent) {
	select {
	case s.events <- event:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded due to a full buffer.
func (s *Redis) Dropped() uint64 {
	return s.dropped.Load()
}

// Run delivers buffered events until the context is cancelled, then drains
// what is left.
func (s *Redis) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case event := <-s.events:
					s.deliver(context.Background(), event)
				default:
					return
				}
			}
		case event := <-s.events:
			s.deliver(ctx, event)
		}
	}
}

func (s *Redis) deliver(ctx context.Context, event marketv1.SignalEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error(err, logger.Field{Key: "action", Value: "encode_signal"})
		}
		return
	}

	if err := s.pub.Publish(ctx, s.channel, payload); err != nil {
		if s.logger != nil {
			s.logger.Error(err, logger.Field{Key: "action", Value: "publish_signal"})
		}
	}
}
