package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisProfileCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisProfileCache(client, 15*time.Minute)
}

func testProfile() *Profile {
	return &Profile{
		UserID:   uuid.New(),
		FullName: "Abebe Kebede",
		Email:    "abebe@example.com",
		Phone:    "0911000000",
		Address:  "Bole, Addis Ababa",
		Role:     "seeker",
	}
}

func TestRedisProfileCache(t *testing.T) {
	ctx := context.Background()
	mr, cache := newTestRedisCache(t)

	t.Run("MissReturnsNilNil", func(t *testing.T) {
		profile, err := cache.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("SetGetRoundTrip", func(t *testing.T) {
		want := testProfile()
		require.NoError(t, cache.Set(ctx, want))

		got, err := cache.Get(ctx, want.UserID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.FullName, got.FullName)
		assert.Equal(t, want.Email, got.Email)
		assert.Equal(t, want.Phone, got.Phone)
	})

	t.Run("TTLEviction", func(t *testing.T) {
		want := testProfile()
		require.NoError(t, cache.Set(ctx, want))

		mr.FastForward(16 * time.Minute)

		got, err := cache.Get(ctx, want.UserID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Clear", func(t *testing.T) {
		want := testProfile()
		require.NoError(t, cache.Set(ctx, want))
		require.NoError(t, cache.Clear(ctx, want.UserID))

		got, err := cache.Get(ctx, want.UserID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMemoryProfileCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryProfileCache(15 * time.Minute)

	want := testProfile()
	require.NoError(t, cache.Set(ctx, want))

	got, err := cache.Get(ctx, want.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Email, got.Email)

	require.NoError(t, cache.Clear(ctx, want.UserID))
	got, err = cache.Get(ctx, want.UserID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFailoverProfileCache(t *testing.T) {
	ctx := context.Background()

	t.Run("FallsBackWhenPrimaryIsDown", func(t *testing.T) {
		mr, primary := newTestRedisCache(t)
		mr.Close() // primary unreachable from the start

		fallback := NewMemoryProfileCache(15 * time.Minute)
		cache := NewFailoverProfileCache(primary, fallback, zap.NewNop())

		want := testProfile()
		require.NoError(t, cache.Set(ctx, want))

		got, err := cache.Get(ctx, want.UserID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.FullName, got.FullName)
	})

	t.Run("UsesPrimaryWhenHealthy", func(t *testing.T) {
		mr, primary := newTestRedisCache(t)
		fallback := NewMemoryProfileCache(15 * time.Minute)
		cache := NewFailoverProfileCache(primary, fallback, zap.NewNop())

		want := testProfile()
		require.NoError(t, cache.Set(ctx, want))

		// Written through the primary layer.
		assert.True(t, mr.Exists("profile:"+want.UserID.String()))
	})

	t.Run("ClearRemovesBothLayers", func(t *testing.T) {
		_, primary := newTestRedisCache(t)
		fallback := NewMemoryProfileCache(15 * time.Minute)
		cache := NewFailoverProfileCache(primary, fallback, zap.NewNop())

		want := testProfile()
		require.NoError(t, primary.Set(ctx, want))
		require.NoError(t, fallback.Set(ctx, want))

		require.NoError(t, cache.Clear(ctx, want.UserID))

		got, err := cache.Get(ctx, want.UserID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
