package redis

import (
	"context"
	"fmt"
	"time"
)

// IncrWithTTL bumps the counter at key. The key is seeded with SET NX EX
// before the increment, so a counter never exists without its expiry; INCR
// keeps the TTL of an existing key.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	if ttl > 0 {
		if err := c.store.SetNX(ctx, key, 0, ttl).Err(); err != nil {
			return 0, fmt.Errorf("arm window %s: %w", key, err)
		}
	}
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return count, nil
}

// FixedWindowAllow counts one hit against scope and reports whether the
// window still has room for it. The returned count includes this hit.
func (c *Client) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	count, err := c.IncrWithTTL(ctx, c.RateLimitKey(scope), window)
	if err != nil {
		return false, count, err
	}
	return count <= limit, count, nil
}
