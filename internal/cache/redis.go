// Package cache holds the optional Redis-backed user profile cache.
//
// The cache only speeds up profile lookups. Callers treat every error as a
// miss and read from the store, so the client is tuned to fail fast rather
// than to wait for a slow or unreachable Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client defaults, applied only when the Redis URL does not set them
// (e.g. redis://host:6379/0?pool_size=20&read_timeout=1s).
const (
	defaultPoolSize     = 4
	defaultMinIdleConns = 1
	defaultDialTimeout  = 2 * time.Second
	defaultIOTimeout    = 250 * time.Millisecond
	defaultPoolTimeout  = 500 * time.Millisecond
	defaultMaxIdleTime  = 5 * time.Minute

	connectTimeout = 3 * time.Second
)

// Cache stores user profiles in Redis.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL and verifies the connection with a bounded ping.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := clientOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// clientOptions parses redisURL and fills in the profile-cache defaults.
func clientOptions(redisURL string) (*redis.Options, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if opt.PoolSize == 0 {
		opt.PoolSize = defaultPoolSize
	}
	if opt.MinIdleConns == 0 {
		opt.MinIdleConns = defaultMinIdleConns
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = defaultDialTimeout
	}
	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = defaultIOTimeout
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = defaultIOTimeout
	}
	if opt.PoolTimeout == 0 {
		opt.PoolTimeout = defaultPoolTimeout
	}
	if opt.ConnMaxIdleTime == 0 {
		opt.ConnMaxIdleTime = defaultMaxIdleTime
	}
	// A dead cache must not stall /api/auth/me behind retries.
	opt.MaxRetries = -1

	return opt, nil
}

// Ping checks Redis connectivity for the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client returns the underlying Redis client, for test cleanup.
func (c *Cache) Client() *redis.Client {
	return c.client
}
