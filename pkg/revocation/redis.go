package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// keyPrefix namespaces denylist entries so the instance can share a Redis
// database with other eduaid services.
const keyPrefix = "revoked:"

// revokedMarker is the sentinel value stored per key; only presence matters.
const revokedMarker = "1"

// Config holds Redis connection configuration for the revocation store.
type Config struct {
	// URL is a redis:// connection URL.
	URL string
	// Password overrides the URL's password when set.
	Password string
	// DB selects the logical database; negative means "use the URL's".
	DB int
	// MaxRetries is the per-command retry budget.
	MaxRetries int
	// PoolSize caps the connection pool.
	PoolSize int
}

// DefaultConfig returns a config pointing at a local Redis.
func DefaultConfig() Config {
	return Config{
		URL:        "redis://localhost:6379",
		DB:         -1,
		MaxRetries: 3,
		PoolSize:   10,
	}
}

// RedisStore is the Redis-backed denylist.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis from the given configuration and verifies
// the connection with a ping.
func NewRedisStore(cfg Config) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB >= 0 {
		opts.DB = cfg.DB
	}
	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client. Tests use this with
// miniredis.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke denylists a token until its ttl elapses. SET is atomic and
// last-writer-wins, so revoking an already-revoked token is a no-op
// success. A non-positive ttl means the token has already expired and
// nothing needs to be stored.
func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+token, revokedMarker, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token is denylisted. A key miss (never
// revoked, or evicted after its TTL) is (false, nil). Any transport error
// is returned so the caller can fail closed.
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, keyPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	return true, nil
}

// Ping verifies the store is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
