package repository

import (
	"context"
	"testing"
	"time"

	"spam-shield/internal/apps/otp/models"
	"spam-shield/internal/common/config"
	"spam-shield/internal/common/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseSessionStore(t *testing.T, store SessionStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	session := models.NewVerificationSession("sid-1")
	session.Arm("+919876543210", "Asha", "012345", time.Now().UTC(), time.Minute)
	require.NoError(t, store.Save(ctx, session))

	loaded, found, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "012345", loaded.PendingCode)
	assert.Equal(t, "Asha", loaded.DisplayName)

	// the loaded value is a copy
	loaded.PendingCode = "999999"
	again, _, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "012345", again.PendingCode)
}

func TestMemorySessionStore(t *testing.T) {
	exerciseSessionStore(t, NewMemorySessionStore(time.Hour))
}

func TestMemorySessionStore_Expires(t *testing.T) {
	store := NewMemorySessionStore(time.Minute).(*memorySessionStore)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.NewVerificationSession("sid")))
	_, found, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	_, found, err = store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySessionStore_SweepsAbandonedSessions(t *testing.T) {
	store := NewMemorySessionStore(time.Minute).(*memorySessionStore)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.NewVerificationSession("stale")))
	now = now.Add(2 * time.Minute)

	// Saves between sweeps leave the stale entry in place but Load hides it.
	for i := 1; i < sweepEvery-1; i++ {
		require.NoError(t, store.Save(ctx, models.NewVerificationSession("live")))
	}
	assert.Len(t, store.items, 2)

	require.NoError(t, store.Save(ctx, models.NewVerificationSession("live")))
	assert.Equal(t, sweepEvery, store.saves)
	assert.Len(t, store.items, 1)
	_, found, err := store.Load(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = store.Load(ctx, "live")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseSessionStore(t, NewRedisSessionStore(client, time.Hour))
}

func TestRedisSessionStore_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.NewVerificationSession("sid")))

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewSessionStore(t *testing.T) {
	store, err := NewSessionStore(config.BackendMemory, database.Connections{}, time.Hour)
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = NewSessionStore(config.BackendRedis, database.Connections{}, time.Hour)
	assert.Error(t, err)

	_, err = NewSessionStore(config.BackendPostgres, database.Connections{}, time.Hour)
	assert.Error(t, err)
}
