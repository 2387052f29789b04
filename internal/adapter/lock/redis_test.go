package lock

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisLocker(t *testing.T) (*RedisLocker, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisLocker(rdb), func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func TestRedisLocker_TryAcquire_SecondAttemptBlocked(t *testing.T) {
	l, cleanup := newTestRedisLocker(t)
	defer cleanup()

	ctx := context.Background()
	release, ok, err := l.TryAcquire(ctx, "collector", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryAcquire(ctx, "collector", time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	release(ctx)

	_, ok, err = l.TryAcquire(ctx, "collector", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLocker_DifferentKeysDoNotConflict(t *testing.T) {
	l, cleanup := newTestRedisLocker(t)
	defer cleanup()

	ctx := context.Background()
	_, ok1, err := l.TryAcquire(ctx, "collector", time.Minute)
	require.NoError(t, err)
	require.True(t, ok1)

	_, ok2, err := l.TryAcquire(ctx, "processor", time.Minute)
	require.NoError(t, err)
	require.True(t, ok2)
}

func TestRedisLocker_ReleaseIsIdempotent(t *testing.T) {
	l, cleanup := newTestRedisLocker(t)
	defer cleanup()

	ctx := context.Background()
	release, ok, err := l.TryAcquire(ctx, "notify", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	release(ctx)
	release(ctx)

	_, ok, err = l.TryAcquire(ctx, "notify", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNoopLocker_AlwaysGrants(t *testing.T) {
	var l NoopLocker
	release, ok, err := l.TryAcquire(context.Background(), "any", 0)
	require.NoError(t, err)
	require.True(t, ok)
	release(context.Background())
}
