package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eduaid/auth-service/pkg/auth"
)

// MemoryStore is an in-process credential store. It backs tests and the
// "memory" storage type for local development; nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*auth.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*auth.User)}
}

// FindByEmail looks up a user by exact normalized email.
func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// Create inserts a new user record. The map write under a single lock
// mirrors the unique-index guarantee of the SQL backends: one winner per
// email.
func (s *MemoryStore) Create(_ context.Context, email, passwordHash string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, auth.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user := &auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[email] = user

	copied := *user
	return &copied, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
