package usecase

import "github.com/oricho123/rentifier/internal/domain"

// EventPublisher is the best-effort lifecycle-event sink every usecase
// service accepts (§1.3). A publish failure is logged by the implementation
// and never propagated — events are for external analytics, never on the
// hot path.
type EventPublisher interface {
	Publish(ctx domain.Context, eventType string, payload map[string]any)
}

// NoopPublisher discards every event. It is the default for every
// *Service constructor so Kafka wiring stays strictly opt-in (§1.3).
type NoopPublisher struct{}

// Publish implements EventPublisher by doing nothing.
func (NoopPublisher) Publish(domain.Context, string, map[string]any) {}
