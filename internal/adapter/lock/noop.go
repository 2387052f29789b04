package lock

import (
	"context"
	"time"
)

// NoopLocker always grants the lock. Used when REDIS_URL is unset.
type NoopLocker struct{}

func (NoopLocker) TryAcquire(context.Context, string, time.Duration) (func(context.Context), bool, error) {
	return func(context.Context) {}, true, nil
}
