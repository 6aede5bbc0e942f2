package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// MetricsCache is a short-lived read-through cache for dashboard data, so a
// busy back office does not hammer the store's reporting endpoints.
type MetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMetricsCache(client *redis.Client, ttl time.Duration) *MetricsCache {
	return &MetricsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get unmarshals the cached value for key into out; found is false on miss.
func (c *MetricsCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := c.client.Get(ctx, "dashboard:"+key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores val under key for the cache TTL.
func (c *MetricsCache) Set(ctx context.Context, key string, val interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "dashboard:"+key, data, c.ttl).Err()
}
