// Package cache implements the forecast cache on top of Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/forecasting/internal/application/adapter"
	"github.com/finance-tracker/forecasting/internal/domain/entity"
)

const forecastKeyPrefix = "forecast:"

// Stats tracks cache hits, misses and writes.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// forecastEntry is the JSON document stored per key.
type forecastEntry struct {
	Result   *entity.ForecastResult `json:"result"`
	CachedAt time.Time              `json:"cached_at"`
}

// RedisForecastCache stores forecast results as JSON with a TTL.
type RedisForecastCache struct {
	redis  redis.Cmdable
	prefix string

	mu    sync.Mutex
	stats Stats
}

// NewRedisForecastCache creates a new Redis-backed forecast cache.
func NewRedisForecastCache(client redis.Cmdable) *RedisForecastCache {
	return &RedisForecastCache{
		redis:  client,
		prefix: forecastKeyPrefix,
	}
}

var _ adapter.ForecastCache = (*RedisForecastCache)(nil)

// Get returns the cached result for key, or nil on a miss.
func (c *RedisForecastCache) Get(ctx context.Context, key string) (*entity.ForecastResult, error) {
	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(func(s *Stats) { s.Misses++ })
		return nil, nil
	}
	if err != nil {
		c.record(func(s *Stats) { s.Misses++ })
		return nil, fmt.Errorf("failed to read forecast cache: %w", err)
	}

	var entry forecastEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.record(func(s *Stats) { s.Misses++ })
		return nil, fmt.Errorf("failed to decode cached forecast: %w", err)
	}

	c.record(func(s *Stats) { s.Hits++ })
	return entry.Result, nil
}

// Set stores result under key for ttl. A zero ttl keeps the entry until evicted.
func (c *RedisForecastCache) Set(ctx context.Context, key string, result *entity.ForecastResult, ttl time.Duration) error {
	data, err := json.Marshal(forecastEntry{
		Result:   result,
		CachedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}

	if err := c.redis.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write forecast cache: %w", err)
	}

	c.record(func(s *Stats) { s.Sets++ })
	return nil
}

// Stats returns a copy of the current counters.
func (c *RedisForecastCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *RedisForecastCache) record(update func(*Stats)) {
	c.mu.Lock()
	update(&c.stats)
	c.mu.Unlock()
}
