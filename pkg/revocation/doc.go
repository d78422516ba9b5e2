// Package revocation implements the logout denylist: a fast key-value
// record of tokens that must no longer be honored even though they are
// still cryptographically valid.
//
// # Overview
//
// Every entry carries a time-to-live equal to the token's remaining
// validity window, so eviction is delegated entirely to the store. An
// evicted entry and a never-revoked token are indistinguishable, which is
// correct because the underlying token has expired by then.
//
// # Semantics
//
//	store.Revoke(ctx, token, ttl)    // idempotent; ttl <= 0 is a no-op
//	store.IsRevoked(ctx, token)      // miss and evicted are both (false, nil)
//
// A transport error from IsRevoked means the revocation status is unknown.
// Callers must treat that as a rejection (fail closed); pkg/middleware does.
//
// # Backends
//
// RedisStore is the production backend. MemoryStore serves tests and the
// development configuration.
package revocation
