package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"founder-match/internal/config"
	"founder-match/internal/domain/match"
	"founder-match/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type captureWriter struct {
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestKafkaPublisher_PublishMatchEvent(t *testing.T) {
	w := &captureWriter{}
	p := newKafkaPublisherWithWriter(w)

	m, err := match.New(uuid.New(), uuid.New(), matching.Score{Total: 64})
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	if err := p.PublishMatchEvent(context.Background(), match.NewEvent(match.EventCreated, m)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != m.ID.String() {
		t.Fatalf("expected key to be the match id, got %q", msg.Key)
	}
	var got match.Event
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != match.EventCreated || got.Score != 64 || got.MatchID != m.ID {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestNewWriter_DoesNotBlockCallers(t *testing.T) {
	w := newWriter(config.KafkaConfig{Brokers: []string{"localhost:9092"}, MatchTopic: "match-events"}, zap.NewNop())
	if !w.Async {
		t.Fatalf("writer must be async so Generate and Act never wait on the broker")
	}
	if w.Completion == nil {
		t.Fatalf("async writer needs a completion callback to surface delivery failures")
	}
	if _, ok := w.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("expected hash balancer for per-match ordering, got %T", w.Balancer)
	}
}

func TestCompletionLogger_ReportsFailedDeliveries(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	done := completionLogger(zap.New(core))

	msg := kafka.Message{
		Key:     []byte("m-1"),
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(match.EventCreated)}},
	}
	done([]kafka.Message{msg}, nil)
	if logs.Len() != 0 {
		t.Fatalf("successful delivery should not log, got %d entries", logs.Len())
	}

	done([]kafka.Message{msg}, errors.New("broker down"))
	entries := logs.FilterMessage("match event delivery failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 failure entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["match_id"] != "m-1" || fields["event_type"] != string(match.EventCreated) {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
