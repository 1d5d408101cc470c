package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotAcquired = errors.New("lock not acquired")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serialises callers across processes with SET NX plus a
// per-holder token. The TTL bounds how long a crashed holder blocks others;
// leases are not renewed, so a holder outliving the TTL loses the key.
type RedisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	retry  time.Duration
	log    *slog.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, log *slog.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: "lock:",
		ttl:    ttl,
		retry:  25 * time.Millisecond,
		log:    log,
	}
}

// Lock polls until key is acquired or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	name := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, name, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("lock %s: %w: %w", name, ErrNotAcquired, ctx.Err())
			}
			return nil, fmt.Errorf("lock %s: %w", name, err)
		}
		if ok {
			acquired := time.Now()
			return func() { l.release(name, token, acquired) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lock %s: %w: %w", name, ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(name, token string, acquired time.Time) {
	// The caller's ctx may already be cancelled by now.
	deleted, err := releaseScript.Run(context.Background(), l.client, []string{name}, token).Int64()
	if err != nil {
		l.log.Error("lock release failed", "key", name, "err", err)
		return
	}
	if deleted == 0 {
		l.log.Warn("lock lease expired before release",
			"key", name,
			"held_ms", time.Since(acquired).Milliseconds(),
			"ttl_ms", l.ttl.Milliseconds(),
		)
	}
}
