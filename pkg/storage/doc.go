// Package storage defines the credential store abstraction and its
// configuration.
//
// # Overview
//
// The credential store is the durable record of user identity: a unique,
// case-normalized email plus a bcrypt password hash. Three backends
// implement the same contract:
//
//   - pkg/storage/postgres: production backend on database/sql + lib/pq.
//     The unique index on email is the serialization point for concurrent
//     registrations.
//   - pkg/storage/sqlite: single-node and development deployments.
//   - storage.NewMemoryStore: in-process fake for tests.
//
// # Contract
//
//	store.FindByEmail(ctx, email) // miss -> auth.ErrUserNotFound
//	store.Create(ctx, email, passwordHash) // duplicate -> auth.ErrDuplicateEmail
//
// Lookups are exact matches on the normalized (lowercased, trimmed) email;
// callers normalize before reaching the store.
//
// # Configuration
//
//	cfg := storage.DefaultConfig()
//	cfg.Type = "postgres"
//	cfg.PostgresURL = "postgres://localhost/eduaid_auth"
//
// The backend is selected by cmd/authd from Config.Type.
package storage
