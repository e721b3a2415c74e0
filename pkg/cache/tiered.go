package cache

import (
	"context"
	"time"
)

// TieredCache layers a fast cache over a slower one: reads check the fast
// tier first and promote slow-tier hits, writes go to both. The CLI uses a
// memory tier over the file tier so repeated validations within one process
// skip disk entirely.
type TieredCache struct {
	fast Cache
	slow Cache
}

// NewTieredCache combines two caches into a read-through pair.
func NewTieredCache(fast, slow Cache) Cache {
	return &TieredCache{fast: fast, slow: slow}
}

// Get checks the fast tier, then the slow tier. Slow-tier hits are
// promoted without expiration; the slow tier still enforces its own TTL.
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.fast.Get(ctx, key); err != nil || ok {
		return data, ok, err
	}
	data, ok, err := c.slow.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.fast.Set(ctx, key, data, 0) // promotion is best effort
	return data, true, nil
}

// Set writes to both tiers. A fast-tier failure does not mask a successful
// slow-tier write.
func (c *TieredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_ = c.fast.Set(ctx, key, data, ttl)
	return c.slow.Set(ctx, key, data, ttl)
}

// Delete removes the key from both tiers.
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	_ = c.fast.Delete(ctx, key)
	return c.slow.Delete(ctx, key)
}

// Close closes both tiers.
func (c *TieredCache) Close() error {
	_ = c.fast.Close()
	return c.slow.Close()
}

// Ensure TieredCache implements Cache.
var _ Cache = (*TieredCache)(nil)
