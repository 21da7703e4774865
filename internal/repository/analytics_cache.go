package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AnalyticsCache stores derived per-child analyses in Redis. A nil client
// turns every call into a miss, which is how caching is disabled.
type AnalyticsCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewAnalyticsCache(rdb *redis.Client, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{RDB: rdb, TTL: ttl}
}

func analyticsKey(kind, childID string) string {
	return fmt.Sprintf("analytics:%s:%s", kind, childID)
}

// Get decodes the cached value into dest and reports whether it was found.
func (c *AnalyticsCache) Get(ctx context.Context, kind, childID string, dest interface{}) (bool, error) {
	if c == nil || c.RDB == nil {
		return false, nil
	}
	raw, err := c.RDB.Get(ctx, analyticsKey(kind, childID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *AnalyticsCache) Set(ctx context.Context, kind, childID string, value interface{}) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, analyticsKey(kind, childID), raw, c.TTL).Err()
}

func (c *AnalyticsCache) Invalidate(ctx context.Context, kind, childID string) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	return c.RDB.Del(ctx, analyticsKey(kind, childID)).Err()
}

// InvalidateKind drops every cached analysis of one kind, e.g. after the
// policy it was computed under changes.
func (c *AnalyticsCache) InvalidateKind(ctx context.Context, kind string) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	iter := c.RDB.Scan(ctx, 0, analyticsKey(kind, "*"), 100).Iterator()
	keys := make([]string, 0, 100)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == cap(keys) {
			if err := c.RDB.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.RDB.Del(ctx, keys...).Err()
	}
	return nil
}
