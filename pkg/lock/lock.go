// Package lock serializes booking critical sections. Two concurrent
// bookings for one calendar can both pass the conflict check before either
// inserts; holding the calendar locks across check-then-insert closes that
// window. The storage exclusion constraint backstops deployments that run
// without Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("calendar lock not acquired")

// Locker guards a critical section with a mutex per calendar key.
// Keys are sorted before acquisition so overlapping key sets cannot
// deadlock each other.
type Locker interface {
	WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// PractitionerKey names the lock for a practitioner calendar.
func PractitionerKey(id uuid.UUID) string {
	return "lock:calendar:practitioner:" + id.String()
}

// ResourceKey names the lock for a resource calendar.
func ResourceKey(id uuid.UUID) string {
	return "lock:calendar:resource:" + id.String()
}

type redisLocker struct {
	client  *redis.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) Locker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &redisLocker{
		client:  client,
		ttl:     ttl,
		retries: 3,
		backoff: 50 * time.Millisecond,
	}
}

var releaseScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisLocker) WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	token := uuid.NewString()
	acquired := make([]string, 0, len(sorted))

	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			// Best effort; an orphaned lock expires on its own.
			_, _ = releaseScript.Run(ctx, l.client, []string{acquired[i]}, token).Result()
		}
	}

	for _, key := range sorted {
		if err := l.acquire(ctx, key, token); err != nil {
			release()
			return err
		}
		acquired = append(acquired, key)
	}
	defer release()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

func (l *redisLocker) acquire(ctx context.Context, key, token string) error {
	for attempt := 0; ; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire calendar lock: %w", err)
		}
		if ok {
			return nil
		}
		if attempt >= l.retries {
			return ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.backoff << uint(attempt)):
		}
	}
}
