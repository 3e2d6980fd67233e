package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewCacheTTL = 5 * time.Minute

// ViewCache stores rendered claim-list views per scope key. Misses and
// store errors are indistinguishable to the caller: both present as a
// cold cache, the read path falls through to the repository.
type ViewCache struct {
	client *redis.Client
}

func NewViewCache(client *redis.Client) *ViewCache {
	return &ViewCache{client: client}
}

func (c *ViewCache) Get(ctx context.Context, scope string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, scope).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *ViewCache) Set(ctx context.Context, scope string, payload []byte) error {
	return c.client.Set(ctx, scope, payload, viewCacheTTL).Err()
}

// Invalidate drops the given scope keys. Called post-commit for every
// scope that could have rendered the mutated claim.
func (c *ViewCache) Invalidate(ctx context.Context, scopes ...string) error {
	if len(scopes) == 0 {
		return nil
	}
	return c.client.Del(ctx, scopes...).Err()
}
