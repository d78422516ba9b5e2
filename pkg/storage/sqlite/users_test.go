package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduaid/auth-service/pkg/auth"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err, "Open failed")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserStore_CreateAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "expected assigned id")

	found, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
	assert.False(t, found.CreatedAt.IsZero(), "expected created_at to round-trip")
}

func TestUserStore_FindMiss(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestUserStore_Duplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)

	_, err = store.Create(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestUserStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.db")

	store, err := Open(path)
	require.NoError(t, err, "Open failed")
	_, err = store.Create(context.Background(), "a@x.com", "hash")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err, "reopen failed")
	defer reopened.Close()

	found, err := reopened.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err, "FindByEmail after reopen failed")
	assert.Equal(t, "a@x.com", found.Email, "expected persisted record")
}

func TestUserStore_Ping(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
