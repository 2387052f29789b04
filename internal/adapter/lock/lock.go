// Package lock provides a best-effort advisory run-lock so horizontally
// scheduled cron triggers for the same job don't overlap in-flight work.
// Correctness never depends on it (§1.3): RawListing uniqueness, upsert
// idempotency, and the NotificationSent primary key already make overlapping
// runs safe, so a lock acquisition failure is logged and the job proceeds.
package lock

import (
	"context"
	"time"
)

// Locker acquires a short-lived advisory lock keyed by job name. Release is
// owned by the returned func, which is safe to call multiple times.
type Locker interface {
	// TryAcquire attempts to take the lock for key, held for at most ttl.
	// ok is false if another holder currently has it; release is a no-op
	// func in that case.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context), ok bool, err error)
}
