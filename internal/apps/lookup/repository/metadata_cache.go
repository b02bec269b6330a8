package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"spam-shield/internal/apps/lookup/models"
	"spam-shield/internal/common/database"

	"github.com/redis/go-redis/v9"
)

// MetadataCache remembers successful lookups. Degraded results are never cached.
type MetadataCache interface {
	Get(ctx context.Context, phone string) (models.Metadata, bool, error)
	Set(ctx context.Context, phone string, md models.Metadata) error
}

// NewMetadataCache uses redis when a client is given, process memory otherwise
func NewMetadataCache(rdb *redis.Client, ttl time.Duration) MetadataCache {
	if rdb != nil {
		return NewRedisMetadataCache(rdb, ttl)
	}
	return NewMemoryMetadataCache(ttl)
}

type cachedMetadata struct {
	md      models.Metadata
	expires time.Time
}

// memoryMetadataCache is a mutex guarded map with per entry expiry
type memoryMetadataCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cachedMetadata
	now     func() time.Time
}

// NewMemoryMetadataCache creates an in-process MetadataCache
func NewMemoryMetadataCache(ttl time.Duration) MetadataCache {
	return &memoryMetadataCache{
		ttl:     ttl,
		entries: make(map[string]cachedMetadata),
		now:     time.Now,
	}
}

func (c *memoryMetadataCache) Get(_ context.Context, phone string) (models.Metadata, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[phone]
	if !ok {
		return models.Metadata{}, false, nil
	}
	if c.now().After(e.expires) {
		delete(c.entries, phone)
		return models.Metadata{}, false, nil
	}
	return e.md, true, nil
}

func (c *memoryMetadataCache) Set(_ context.Context, phone string, md models.Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[phone] = cachedMetadata{md: md, expires: c.now().Add(c.ttl)}
	return nil
}

// redisMetadataCache stores JSON encoded metadata under a per number key
type redisMetadataCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisMetadataCache creates a redis backed MetadataCache
func NewRedisMetadataCache(rdb *redis.Client, ttl time.Duration) MetadataCache {
	return &redisMetadataCache{rdb: rdb, ttl: ttl}
}

func (c *redisMetadataCache) Get(ctx context.Context, phone string) (models.Metadata, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(phone)).Bytes()
	if database.IsErrRedisNil(err) {
		return models.Metadata{}, false, nil
	}
	if err != nil {
		return models.Metadata{}, false, err
	}

	var md models.Metadata
	if err := json.Unmarshal(b, &md); err != nil {
		return models.Metadata{}, false, err
	}
	return md, true, nil
}

func (c *redisMetadataCache) Set(ctx context.Context, phone string, md models.Metadata) error {
	b, err := json.Marshal(md)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(phone), b, c.ttl).Err()
}

func (c *redisMetadataCache) key(phone string) string {
	return "spam_shield:lookup:" + phone
}
