package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduaid/auth-service/pkg/storage"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.HealthPort)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, storage.TypePostgres, cfg.Storage.Type)
	assert.NotEmpty(t, cfg.Revocation.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_PORT", "8080")
	t.Setenv("AUTH_TOKEN_TTL", "30m")
	t.Setenv("AUTH_STORAGE_TYPE", "sqlite")
	t.Setenv("AUTH_SQLITE_PATH", "/tmp/users.db")
	t.Setenv("AUTH_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("AUTH_LOG_LEVEL", "debug")
	t.Setenv("AUTH_LOG_JSON", "false")
	t.Setenv("AUTH_CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, storage.TypeSQLite, cfg.Storage.Type)
	assert.Equal(t, "/tmp/users.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "redis://cache:6379/2", cfg.Revocation.URL)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8000", HealthPort: "9090"},
			Auth:   AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
			Storage: storage.Config{
				Type:        storage.TypeMemory,
				PostgresURL: "postgres://localhost/auth",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"port collision", func(c *Config) { c.Server.HealthPort = "8000" }, true},
		{"zero TTL", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"bad storage type", func(c *Config) { c.Storage.Type = "cassandra" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "nope")
	t.Setenv("TEST_DUR", "90s")
	t.Setenv("TEST_BOOL", "1")

	assert.Equal(t, "value", getEnv("TEST_STR", "default"))
	assert.Equal(t, "default", getEnv("TEST_UNSET", "default"))
	assert.Equal(t, 42, getEnvInt("TEST_INT", 0))
	assert.Equal(t, 7, getEnvInt("TEST_BAD_INT", 7))
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DUR", 0))
	assert.True(t, getEnvBool("TEST_BOOL", false))
}
