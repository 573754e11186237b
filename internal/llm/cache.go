package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/MikeSquared-Agency/triage/internal/metrics"
)

const cacheKeyPrefix = "triage:llm:"

// Cache stores raw inference responses.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Cached serves repeated temperature-0 prompts from a cache. Sampled
// requests always reach the provider. Cache errors are logged and never fail
// a call. Concurrent misses for the same key share one provider call.
type Cached struct {
	next   Completer
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
	flight singleflight.Group
}

func NewCached(next Completer, cache Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *Cached) Complete(ctx context.Context, req Request) (string, error) {
	if req.Temperature != 0 {
		return c.next.Complete(ctx, req)
	}

	key := cacheKey(req)
	val, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheLookup("error")
		c.logger.Warn("inference cache read failed", "task", req.Task, "error", err)
	case ok:
		metrics.RecordCacheLookup("hit")
		return val, nil
	default:
		metrics.RecordCacheLookup("miss")
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		out, err := c.next.Complete(ctx, req)
		if err != nil {
			return "", err
		}
		if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
			c.logger.Warn("inference cache write failed", "task", req.Task, "error", err)
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func cacheKey(req Request) string {
	sum := sha256.Sum256([]byte(req.Prompt))
	return cacheKeyPrefix + req.Task + ":" + hex.EncodeToString(sum[:])
}
