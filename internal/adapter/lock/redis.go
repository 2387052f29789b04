package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocker implements Locker with a SET NX EX acquire and a Lua-scripted
// compare-and-delete release, so a holder can never release a lock it does
// not still own (e.g. after its TTL already expired and someone else took it).
type RedisLocker struct {
	redis *redis.Client
	script *redis.Script
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	if rdb == nil {
		return nil
	}
	return &RedisLocker{redis: rdb, script: redis.NewScript(luaReleaseScript)}
}

const luaReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`

func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context), bool, error) {
	if l == nil || l.redis == nil {
		return func(context.Context) {}, true, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	token, err := randomToken()
	if err != nil {
		slog.Error("lock token generation failed", slog.String("key", key), slog.Any("error", err))
		return func(context.Context) {}, true, err
	}

	redisKey := "lock:" + key
	ok, err := l.redis.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		slog.Error("redis lock acquire error", slog.String("key", key), slog.Any("error", err))
		// Fail open: a lock outage should never block a scheduled job from
		// running, it only loses the overlap-avoidance optimization.
		return func(context.Context) {}, true, err
	}
	if !ok {
		return func(context.Context) {}, false, nil
	}

	release := func(releaseCtx context.Context) {
		if err := l.script.Run(releaseCtx, l.redis, []string{redisKey}, token).Err(); err != nil {
			slog.Error("redis lock release error", slog.String("key", key), slog.Any("error", err))
		}
	}
	return release, true, nil
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
