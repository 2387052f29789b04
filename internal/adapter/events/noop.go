package events

import "github.com/oricho123/rentifier/internal/domain"

// NoopPublisher discards every event. Used when KAFKA_BROKERS is unset.
type NoopPublisher struct{}

func (NoopPublisher) Publish(domain.Context, string, map[string]any) {}
