package quota

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache is the usage-count cache contract. A miss is not an error; the
// service falls through to counting documents in the store.
type Cache interface {
	GetUsage(ctx context.Context, tenantID uuid.UUID) (Usage, bool)
	SetUsage(ctx context.Context, tenantID uuid.UUID, usage Usage) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// NoopCache disables caching; every check counts documents in the store.
type NoopCache struct{}

func (NoopCache) GetUsage(ctx context.Context, tenantID uuid.UUID) (Usage, bool) {
	return Usage{}, false
}

func (NoopCache) SetUsage(ctx context.Context, tenantID uuid.UUID, usage Usage) error {
	return nil
}

func (NoopCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	return nil
}

// RedisCache stores usage counts with a short TTL. Stale counts only widen
// the already-accepted read-then-decide race window, so the TTL is kept
// small rather than invalidation being made airtight.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultUsageTTL bounds how stale a cached usage count can get.
const DefaultUsageTTL = 30 * time.Second

// NewRedisCache creates a Redis-backed usage cache. Non-positive TTLs fall
// back to DefaultUsageTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultUsageTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func usageKey(tenantID uuid.UUID) string {
	return "quota:usage:" + tenantID.String()
}

func (c *RedisCache) GetUsage(ctx context.Context, tenantID uuid.UUID) (Usage, bool) {
	raw, err := c.client.Get(ctx, usageKey(tenantID)).Bytes()
	if err != nil {
		// Treat every failure as a miss, including redis.Nil.
		return Usage{}, false
	}

	var usage Usage
	if err := json.Unmarshal(raw, &usage); err != nil {
		return Usage{}, false
	}
	return usage, true
}

func (c *RedisCache) SetUsage(ctx context.Context, tenantID uuid.UUID, usage Usage) error {
	raw, err := json.Marshal(usage)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, usageKey(tenantID), raw, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	err := c.client.Del(ctx, usageKey(tenantID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
