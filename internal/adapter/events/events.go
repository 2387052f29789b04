// Package events provides a best-effort domain event publisher implementing
// usecase.EventPublisher. Every job call-site treats publish failures as
// non-fatal: they are logged and never affect the job's own success/failure
// accounting (§1.3).
package events

const Topic = "rentifier.events"
