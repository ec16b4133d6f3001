package storage

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// urlCacheSize bounds the in-process cache; one entry per content id
const urlCacheSize = 4096

// URLCache stores resolved content URLs for a fixed duration. Entries are
// invalidated purely by time; the network never signals eviction.
//
//go:generate mockgen -source=cache.go -destination=../mocks/url_cache.go -package=mocks -mock_names=URLCache=MockURLCache
type URLCache interface {
	Get(ctx context.Context, contentID string) (string, bool)
	Set(ctx context.Context, contentID string, url string)
}

// memoryCache is the default in-process backend
type memoryCache struct {
	entries *lru.LRU[string, string]
}

// NewMemoryCache creates a TTL-bounded in-process URL cache
func NewMemoryCache(ttl time.Duration) URLCache {
	return &memoryCache{
		entries: lru.NewLRU[string, string](urlCacheSize, nil, ttl),
	}
}

func (c *memoryCache) Get(_ context.Context, contentID string) (string, bool) {
	return c.entries.Get(contentID)
}

func (c *memoryCache) Set(_ context.Context, contentID string, url string) {
	c.entries.Add(contentID, url)
}

// redisCache shares resolved URLs across processes. Used when several client
// instances sit behind one deployment and should not re-resolve per process.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache creates a redis-backed URL cache with the same TTL semantics
// as the in-process backend
func NewRedisCache(client *redis.Client, ttl time.Duration) URLCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		prefix: "melodify:url:",
	}
}

func (c *redisCache) Get(ctx context.Context, contentID string) (string, bool) {
	url, err := c.client.Get(ctx, c.prefix+contentID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Cache failures degrade to a fresh resolution, never to an error
			return "", false
		}
		return "", false
	}
	return url, true
}

func (c *redisCache) Set(ctx context.Context, contentID string, url string) {
	_ = c.client.Set(ctx, c.prefix+contentID, url, c.ttl).Err()
}
