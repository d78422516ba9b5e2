package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisStoreTest starts a miniredis instance and returns the store
// and the server handle. Both are torn down with the test.
func setupRedisStoreTest(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")

	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		store.Close()
		mr.Close()
	})
	return store, mr
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "invalid://url"

	_, err := NewRedisStore(cfg)
	assert.Error(t, err, "expected error for invalid redis URL")
}

func TestNewRedisStore_ConnectionFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "redis://localhost:1" // nothing listens here

	_, err := NewRedisStore(cfg)
	assert.Error(t, err, "expected connection error")
}

func TestNewRedisStore_Success(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	defer mr.Close()

	cfg := DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()

	store, err := NewRedisStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))
}

func TestRedisStore_RevokeAndCheck(t *testing.T) {
	store, _ := setupRedisStoreTest(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.False(t, revoked, "token must not be revoked before Revoke")

	require.NoError(t, store.Revoke(ctx, "some-token", time.Hour))

	revoked, err = store.IsRevoked(ctx, "some-token")
	require.NoError(t, err)
	assert.True(t, revoked, "expected token to be revoked")
}

func TestRedisStore_RevokeIdempotent(t *testing.T) {
	store, _ := setupRedisStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "tok", time.Hour))
	require.NoError(t, store.Revoke(ctx, "tok", time.Hour))

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked, "expected token to remain revoked")
}

func TestRedisStore_EntryExpiresWithTTL(t *testing.T) {
	store, mr := setupRedisStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "tok", 30*time.Minute))
	assert.Equal(t, 30*time.Minute, mr.TTL(keyPrefix+"tok"))

	// After the TTL elapses the entry is evicted; an evicted token is
	// indistinguishable from one that was never revoked.
	mr.FastForward(31 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked, "expected entry to be evicted after TTL")
}

func TestRedisStore_NonPositiveTTLIsNoop(t *testing.T) {
	store, mr := setupRedisStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "tok", 0))
	require.NoError(t, store.Revoke(ctx, "tok", -time.Minute))
	assert.False(t, mr.Exists(keyPrefix+"tok"), "expired token must not be written to the denylist")
}

func TestRedisStore_StoreDownFailsClosed(t *testing.T) {
	store, mr := setupRedisStoreTest(t)
	ctx := context.Background()

	mr.Close()

	_, err := store.IsRevoked(ctx, "tok")
	require.Error(t, err, "check must not silently pass when the store is unreachable")
}

func TestMemoryStore_Semantics(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return clock })
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "tok", 10*time.Minute))

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	clock = clock.Add(10 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked, "expected entry to expire exactly at its deadline")
}
