package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache stores successful translations. Get reports a miss with ok=false
// and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// RedisOptions configures a RedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// RedisCache shares translations between runs through Redis.
type RedisCache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to the configured Redis server.
func NewRedisCache(opts RedisOptions) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisCacheWithClient(rdb, opts.Prefix, opts.TTL)
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "novelpipe:translate:"
	}
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// CacheKey derives the cache key for one translation.
func CacheKey(service, sourceLang, targetLang, text string) string {
	sum := sha256.Sum256([]byte(service + "|" + sourceLang + "|" + targetLang + "|" + text))
	return hex.EncodeToString(sum[:])
}

// cachedBackend memoizes a Backend. Concurrent requests for the same key
// share one backend call. Failures are never stored.
type cachedBackend struct {
	next    Backend
	cache   Cache
	source  string
	group   singleflight.Group
	logger  *slog.Logger
	metrics *Metrics
}

func newCachedBackend(next Backend, cache Cache, sourceLang string, logger *slog.Logger, metrics *Metrics) *cachedBackend {
	return &cachedBackend{next: next, cache: cache, source: sourceLang, logger: logger, metrics: metrics}
}

func (c *cachedBackend) Name() string { return c.next.Name() }

func (c *cachedBackend) Translate(ctx context.Context, text, targetLang string) (string, error) {
	key := CacheKey(c.next.Name(), c.source, targetLang, text)
	if v, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Debug("translation cache read failed", "error", err)
	} else if ok {
		c.metrics.cacheHit(c.next.Name())
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		out, err := c.next.Translate(ctx, text, targetLang)
		if err != nil {
			return "", err
		}
		if err := c.cache.Set(ctx, key, out); err != nil {
			c.logger.Debug("translation cache write failed", "error", err)
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
