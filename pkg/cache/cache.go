// Package cache provides a namespace+key TTL cache backed by Redis.
// When Redis is disabled every operation is a no-op miss, so callers
// never branch on cache availability.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wonny/tradekit/pkg/config"
)

// Client wraps the Redis connection.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// New creates a new Redis client. A disabled config yields a no-op client.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Cache.Enabled {
		return &Client{enabled: false}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Cache.Host, cfg.Cache.Port),
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{rdb: rdb, enabled: true}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Enabled returns whether the cache is enabled
func (c *Client) Enabled() bool {
	return c.enabled
}

// Cache provides typed JSON caching keyed by namespace and key.
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper with the given key prefix.
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Key builds the full Redis key for a namespace and key.
func (c *Cache) Key(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, namespace, key)
}

// Get retrieves a cached value into dest. Returns false on miss.
func (c *Cache) Get(ctx context.Context, namespace, key string, dest interface{}) (bool, error) {
	if !c.client.enabled {
		return false, nil
	}

	data, err := c.client.rdb.Get(ctx, c.Key(namespace, key)).Bytes()
	if err != nil {
		// Key not found is not an error
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value with a TTL. The SET+TTL is a single atomic command,
// so concurrent invocations cannot observe a half-written entry.
func (c *Cache) Set(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) error {
	if !c.client.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	return c.client.rdb.Set(ctx, c.Key(namespace, key), data, ttl).Err()
}

// Clear removes all entries, or only those under namespace when non-empty.
func (c *Cache) Clear(ctx context.Context, namespace string) (int64, error) {
	if !c.client.enabled {
		return 0, nil
	}

	pattern := fmt.Sprintf("%s:*", c.prefix)
	if namespace != "" {
		pattern = fmt.Sprintf("%s:%s:*", c.prefix, namespace)
	}

	var removed int64
	iter := c.client.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}

// Stats returns the number of entries per namespace.
func (c *Cache) Stats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)
	if !c.client.enabled {
		return stats, nil
	}

	prefixLen := len(c.prefix) + 1
	iter := c.client.rdb.Scan(ctx, 0, fmt.Sprintf("%s:*", c.prefix), 100).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()[prefixLen:]
		for i := 0; i < len(k); i++ {
			if k[i] == ':' {
				stats[k[:i]]++
				break
			}
		}
	}
	return stats, iter.Err()
}
