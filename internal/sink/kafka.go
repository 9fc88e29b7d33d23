package sink

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/segmentio/kafka-go"

	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
	"github.com/muhammadchandra19/tickpulse/pkg/logger"
)

// kafkaBuffer is how many events the kafka sink buffers before dropping.
const kafkaBuffer = 4096

// kafkaBatch caps how many buffered events one WriteMessages call carries.
const kafkaBatch = 256

// KafkaWriter is the subset of kafka-go's Writer the sink needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes signal events to a topic, keyed by primary symbol so one
// symbol's signals stay in partition order. Publish never blocks; a
// background goroutine batches writes.
type Kafka struct {
	writer KafkaWriter
	logger *logger.Logger

	events  chan marketv1.SignalEvent
	dropped atomic.Uint64
}

// NewKafkaWriter builds the kafka-go writer the sink normally runs with.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}

// NewKafka creates a kafka sink on top of the given writer.
func NewKafka(writer KafkaWriter, log *logger.Logger) *Kafka {
	return &Kafka{
		writer: writer,
		logger: log,
		events: make(chan marketv1.SignalEvent, kafkaBuffer),
	}
}

// Publish enqueues one event for delivery. Never blocks.
func (s *Kafka) Publish(event marketv1.SignalEvent) {
	select {
	case s.events <- event:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded due to a full buffer.
func (s *Kafka) Dropped() uint64 {
	return s.dropped.Load()
}

// Run batches buffered events into kafka writes until the context is
// cancelled, then flushes what is left and closes the writer.
func (s *Kafka) Run(ctx context.Context) {
	defer func() {
		if err := s.writer.Close(); err != nil && s.logger != nil {
			s.logger.Error(err, logger.Field{Key: "action", Value: "close_kafka_writer"})
		}
	}()

	batch := make([]marketv1.SignalEvent, 0, kafkaBatch)
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case event := <-s.events:
					batch = append(batch, event)
					if len(batch) == kafkaBatch {
						s.flush(context.Background(), batch)
						batch = batch[:0]
					}
				default:
					s.flush(context.Background(), batch)
					return
				}
			}
		case event := <-s.events:
			batch = append(batch, event)
			// Take whatever else is already buffered, up to the batch cap.
			for len(batch) < kafkaBatch {
				select {
				case next := <-s.events:
					batch = append(batch, next)
					continue
				default:
				}
				break
			}
			s.flush(ctx, batch)
			batch = batch[:0]
		}
	}
}

func (s *Kafka) flush(ctx context.Context, batch []marketv1.SignalEvent) {
	if len(batch) == 0 {
		return
	}

	msgs := make([]kafka.Message, 0, len(batch))
	for _, event := range batch {
		payload, err := json.Marshal(event)
		if err != nil {
			if s.logger != nil {
				s.logger.Error(err, logger.Field{Key: "action", Value: "encode_signal"})
			}
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.PrimarySymbol),
			Value: payload,
		})
	}

	if len(msgs) == 0 {
		return
	}
	if err := s.writer.WriteMessages(ctx, msgs...); err != nil && s.logger != nil {
		s.logger.Error(err, logger.Field{Key: "action", Value: "write_kafka_messages"})
	}
}
