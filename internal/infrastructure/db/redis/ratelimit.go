package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Limited    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter implements a fixed-window counter per (action, identity) pair.
// Key format: ratelimit:<action>:<identity>. The first increment in a
// window sets the expiry; the window boundary is inclusive at the limit,
// so exactly limit calls succeed and call limit+1 is rejected.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLimiter creates a Limiter allowing limit calls per window.
func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow records one call for (action, identity) and reports whether it
// exceeded the window limit. Store errors are returned to the caller so
// the middleware can decide the fail-open policy; the decision itself is
// never guessed here.
func (l *Limiter) Allow(ctx context.Context, action, identity string) (Decision, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", action, identity)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}

	if count > int64(l.limit) {
		ttl, _ := l.client.TTL(ctx, key).Result()
		if ttl < 0 {
			ttl = l.window
		}
		return Decision{Limited: true, RetryAfter: ttl}, nil
	}

	return Decision{Remaining: l.limit - int(count)}, nil
}
