package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"founder-match/internal/config"
	"founder-match/internal/domain/match"
	"founder-match/internal/metrics"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes match events as JSON, keyed by match id so every event
// of one match lands on the same partition.
type KafkaPublisher struct {
	writer  messageWriter
	logger  *zap.Logger
	timeout time.Duration
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := newWriter(cfg, logger)
	logger.Info("kafka publisher initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.MatchTopic),
	)
	return &KafkaPublisher{writer: w, logger: logger, timeout: 5 * time.Second}
}

// newWriter builds an async writer: WriteMessages only enqueues, and delivery
// failures surface through Completion once the batch is flushed.
func newWriter(cfg config.KafkaConfig, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.MatchTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		MaxAttempts:  3,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion:   completionLogger(logger),
		Logger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(msg, args...))
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Warn(fmt.Sprintf(msg, args...))
		}),
	}
}

func completionLogger(logger *zap.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, m := range msgs {
			typ := eventType(m)
			metrics.EventsPublishedTotal.WithLabelValues(typ, resultDropped).Inc()
			logger.Warn("match event delivery failed",
				zap.String("match_id", string(m.Key)),
				zap.String("event_type", typ),
				zap.Error(err),
			)
		}
	}
}

const resultDropped = "dropped"

func eventType(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return "unknown"
}

func newKafkaPublisherWithWriter(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: zap.NewNop(), timeout: time.Second}
}

// PublishMatchEvent enqueues the event. With the production writer it returns
// as soon as the message is buffered.
func (p *KafkaPublisher) PublishMatchEvent(ctx context.Context, e match.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal match event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.MatchID.String()),
		Value: data,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	})
}

// Close flushes buffered events before releasing the writer.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishMatchEvent(context.Context, match.Event) error { return nil }
func (NopPublisher) Close() error                                        { return nil }
