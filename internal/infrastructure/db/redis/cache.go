package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/librisys/library-system/internal/core/ports"
)

// SearchCache caches external metadata search results in Redis.
// Key format: metadata:search:<query>:<max_results>
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache creates a SearchCache wrapping the given Redis client.
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

// Get returns the cached results for a query, with found=false on a miss.
func (c *SearchCache) Get(ctx context.Context, query string, maxResults int) ([]ports.VolumeResult, bool, error) {
	raw, err := c.client.Get(ctx, c.key(query, maxResults)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("search cache get: %w", err)
	}

	var results []ports.VolumeResult
	if err := json.Unmarshal(raw, &results); err != nil {
		// A corrupt entry is treated as a miss and overwritten on Set.
		return nil, false, nil
	}
	return results, true, nil
}

// Set stores results for a query (expires after the configured TTL).
func (c *SearchCache) Set(ctx context.Context, query string, maxResults int, results []ports.VolumeResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("search cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(query, maxResults), raw, c.ttl).Err()
}

func (c *SearchCache) key(query string, maxResults int) string {
	return fmt.Sprintf("metadata:search:%s:%d", query, maxResults)
}
