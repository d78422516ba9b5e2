package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/eduaid/auth-service/pkg/auth"
)

// Storage backend types.
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
	TypeMemory   = "memory"
)

// UserStore is the full credential store contract. It extends the service's
// view (auth.UserStore) with lifecycle and health operations used by the
// binary and the readiness probe.
type UserStore interface {
	auth.UserStore

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close() error
}

// Config holds credential store configuration.
type Config struct {
	// Type selects the backend: postgres, sqlite, or memory.
	Type string

	// PostgreSQL configuration
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	PostgresTimeout  time.Duration

	// SQLite configuration
	SQLitePath string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Type:             TypePostgres,
		PostgresMaxConns: 20,
		PostgresMinConns: 2,
		PostgresTimeout:  10 * time.Second,
	}
}

// Validate checks the configuration for the selected backend.
func (c Config) Validate() error {
	switch c.Type {
	case TypePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres storage")
		}
	case TypeSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for sqlite storage")
		}
	case TypeMemory:
		// No configuration needed.
	default:
		return fmt.Errorf("invalid storage type: %s (must be postgres, sqlite, or memory)", c.Type)
	}
	return nil
}
