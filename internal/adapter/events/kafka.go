package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/oricho123/rentifier/internal/domain"
)

// KafkaPublisher publishes best-effort analytics events to a Kafka/Redpanda
// topic. It never blocks the caller's job loop on broker availability: Produce
// is asynchronous and delivery errors are only logged.
type KafkaPublisher struct {
	client *kgo.Client
}

func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=events.NewKafkaPublisher: no seed brokers provided")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(5),
		kgo.ProducerBatchMaxBytes(1_000_000),
	)
	if err != nil {
		return nil, fmt.Errorf("op=events.NewKafkaPublisher: %w", err)
	}
	return &KafkaPublisher{client: client}, nil
}

type envelope struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload"`
}

func (p *KafkaPublisher) Publish(ctx domain.Context, eventType string, payload map[string]any) {
	if p == nil || p.client == nil {
		return
	}

	// A fresh ID per event, independent of any partition/offset, so a
	// consumer that re-reads the topic after a rebalance can dedup on it.
	b, err := json.Marshal(envelope{EventID: uuid.New().String(), Type: eventType, Timestamp: time.Now().UTC(), Payload: payload})
	if err != nil {
		slog.Error("failed to marshal event payload", slog.String("type", eventType), slog.Any("error", err))
		return
	}

	record := &kgo.Record{
		Topic: Topic,
		Key:   []byte(eventType),
		Value: b,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			slog.Error("failed to publish event", slog.String("type", eventType), slog.Any("error", err))
		}
	})
}

func (p *KafkaPublisher) Close() error {
	if p != nil && p.client != nil {
		p.client.Close()
	}
	return nil
}
