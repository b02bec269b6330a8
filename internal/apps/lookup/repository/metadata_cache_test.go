package repository

import (
	"context"
	"testing"
	"time"

	"spam-shield/internal/apps/lookup/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "+919876543210"

var sample = models.Metadata{Carrier: "Jio", Location: "Mumbai", LineType: "mobile", Country: "India"}

func TestMemoryMetadataCache(t *testing.T) {
	cache := NewMemoryMetadataCache(time.Minute).(*memoryMetadataCache)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_, found, err := cache.Get(ctx, testPhone)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, testPhone, sample))
	got, found, err := cache.Get(ctx, testPhone)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sample, got)

	now = now.Add(2 * time.Minute)
	_, found, err = cache.Get(ctx, testPhone)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisMetadataCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewMetadataCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testPhone, sample))
	got, found, err := cache.Get(ctx, testPhone)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sample, got)

	mr.FastForward(2 * time.Minute)
	_, found, err = cache.Get(ctx, testPhone)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewMetadataCache_DefaultsToMemory(t *testing.T) {
	_, ok := NewMetadataCache(nil, time.Minute).(*memoryMetadataCache)
	assert.True(t, ok)
}
