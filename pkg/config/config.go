// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eduaid/auth-service/pkg/auth"
	"github.com/eduaid/auth-service/pkg/revocation"
	"github.com/eduaid/auth-service/pkg/storage"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Auth       AuthConfig
	Storage    storage.Config
	Revocation revocation.Config
	Log        LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes and scrapes)
	HealthPort string

	CORSOrigins []string
}

// AuthConfig holds token and password hashing configuration.
type AuthConfig struct {
	// JWTSecret signs every issued token. Required; there is no default on
	// purpose.
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
	JSON  bool

	MetricsEnabled bool
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server:     loadServerConfig(),
		Auth:       loadAuthConfig(),
		Storage:    loadStorageConfig(),
		Revocation: loadRevocationConfig(),
		Log:        loadLogConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("AUTH_HOST", "0.0.0.0"),
		Port:            getEnv("AUTH_PORT", "8000"),
		ReadTimeout:     getEnvDuration("AUTH_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("AUTH_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("AUTH_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("AUTH_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("AUTH_HEALTH_PORT", "9090"),
		CORSOrigins:     splitAndTrim(getEnv("AUTH_CORS_ORIGINS", "*")),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
		TokenTTL:   getEnvDuration("AUTH_TOKEN_TTL", auth.DefaultTokenTTL),
		BcryptCost: getEnvInt("AUTH_BCRYPT_COST", auth.DefaultBcryptCost),
	}
}

func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if storageType := getEnv("AUTH_STORAGE_TYPE", ""); storageType != "" {
		cfg.Type = storageType
	}
	if pgURL := getEnv("AUTH_POSTGRES_URL", ""); pgURL != "" {
		cfg.PostgresURL = pgURL
	}
	if maxConns := getEnvInt("AUTH_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		cfg.PostgresMaxConns = maxConns
	}
	if minConns := getEnvInt("AUTH_POSTGRES_MIN_CONNS", 0); minConns > 0 {
		cfg.PostgresMinConns = minConns
	}
	if timeout := getEnvDuration("AUTH_POSTGRES_TIMEOUT", 0); timeout > 0 {
		cfg.PostgresTimeout = timeout
	}
	if path := getEnv("AUTH_SQLITE_PATH", ""); path != "" {
		cfg.SQLitePath = path
	}

	return cfg
}

func loadRevocationConfig() revocation.Config {
	cfg := revocation.DefaultConfig()

	if url := getEnv("AUTH_REDIS_URL", ""); url != "" {
		cfg.URL = url
	}
	if password := getEnv("AUTH_REDIS_PASSWORD", ""); password != "" {
		cfg.Password = password
	}
	if db := getEnvInt("AUTH_REDIS_DB", -1); db >= 0 {
		cfg.DB = db
	}
	if retries := getEnvInt("AUTH_REDIS_MAX_RETRIES", 0); retries > 0 {
		cfg.MaxRetries = retries
	}
	if poolSize := getEnvInt("AUTH_REDIS_POOL_SIZE", 0); poolSize > 0 {
		cfg.PoolSize = poolSize
	}

	return cfg
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:          getEnv("AUTH_LOG_LEVEL", "info"),
		JSON:           getEnvBool("AUTH_LOG_JSON", true),
		MetricsEnabled: getEnvBool("AUTH_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	if err := c.Storage.Validate(); err != nil {
		return err
	}

	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv returns an environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
