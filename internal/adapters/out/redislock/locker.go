// Package redislock implements ports.KeyLocker on Redis so that allocation
// is serialized across several service instances, not only goroutines.
package redislock

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix         = "fulfillment:lock:"
	DefaultTTL        = 5 * time.Second
	defaultRetryDelay = 10 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// Locker takes one Redis key per lock with SET NX PX. Locks expire after ttl
// so a crashed holder cannot block a SKU forever; ttl must comfortably exceed
// the time one allocation holds its locks.
type Locker struct {
	client     redis.UniversalClient
	ttl        time.Duration
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewLocker holds each key for at most ttl, DefaultTTL when ttl is not
// positive.
func NewLocker(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *Locker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Locker{
		client:     client,
		ttl:        ttl,
		retryDelay: defaultRetryDelay,
		logger:     logger.With("component", "redis_locker"),
	}
}

// Lock acquires every key in sorted order, polling until the context ends.
// On failure the keys already taken are released.
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	token := uuid.NewString()
	held := make([]string, 0, len(sorted))
	for _, key := range sorted {
		if err := l.acquire(ctx, keyPrefix+key, token); err != nil {
			l.release(held, token)
			return nil, err
		}
		held = append(held, keyPrefix+key)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(held, token) })
	}, nil
}

func (l *Locker) acquire(ctx context.Context, key, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// release runs detached from the caller's context so a cancelled request
// still gives its locks back.
func (l *Locker) release(held []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.ttl)
	defer cancel()

	for i := len(held) - 1; i >= 0; i-- {
		if err := releaseScript.Run(ctx, l.client, []string{held[i]}, token).Err(); err != nil {
			l.logger.Warn("releasing lock failed", "key", held[i], "error", err)
		}
	}
}
