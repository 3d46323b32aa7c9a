// Package cache stores job parse results in Redis so repeated URL imports skip the fetch.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/types"
)

// KeyPrefix namespaces parse cache keys.
const KeyPrefix = "jobtracker:parse:"

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// ParseCache caches ParsedJob values by URL.
type ParseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect opens a Redis client from cfg and verifies it with PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*ParseCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	return New(client, cfg.TTL), nil
}

// New wraps an existing client. A non-positive ttl means DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *ParseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ParseCache{client: client, ttl: ttl}
}

// Key returns the Redis key for url. URLs are trimmed and hashed so keys stay short.
func Key(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached result for url, or nil when there is none.
func (c *ParseCache) Get(ctx context.Context, url string) (*types.ParsedJob, error) {
	data, err := c.client.Get(ctx, Key(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read parse cache: %w", err)
	}
	var job types.ParsedJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode cached parse result: %w", err)
	}
	return &job, nil
}

// Set stores job under url for the cache TTL.
func (c *ParseCache) Set(ctx context.Context, url string, job types.ParsedJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode parse result: %w", err)
	}
	if err := c.client.Set(ctx, Key(url), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write parse cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached result for url.
func (c *ParseCache) Invalidate(ctx context.Context, url string) error {
	if err := c.client.Del(ctx, Key(url)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate parse cache: %w", err)
	}
	return nil
}

// TTL reports the expiry applied to new entries.
func (c *ParseCache) TTL() time.Duration {
	return c.ttl
}

// Close closes the underlying client.
func (c *ParseCache) Close() error {
	return c.client.Close()
}
