package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduaid/auth-service/pkg/auth"
)

func TestMemoryStore_CreateAndFind(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	found, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
}

func TestMemoryStore_FindMiss(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestMemoryStore_Duplicate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)

	_, err = store.Create(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "a@x.com", "hash")
	require.NoError(t, err)
	created.Email = "mutated@x.com"

	found, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", found.Email, "store must not be affected by caller mutation")
}

func TestMemoryStore_ConcurrentCreateSingleWinner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, "race@x.com", "hash")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won int
	for err := range errs {
		if err == nil {
			won++
		} else if !errors.Is(err, auth.ErrDuplicateEmail) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "expected exactly one winner")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"postgres with URL", Config{Type: TypePostgres, PostgresURL: "postgres://localhost/auth"}, false},
		{"postgres without URL", Config{Type: TypePostgres}, true},
		{"sqlite with path", Config{Type: TypeSQLite, SQLitePath: "/tmp/auth.db"}, false},
		{"sqlite without path", Config{Type: TypeSQLite}, true},
		{"memory", Config{Type: TypeMemory}, false},
		{"unknown", Config{Type: "cassandra"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
