// Command authd runs the authentication service: registration, login,
// token verification, and logout revocation over HTTP.
package main

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/eduaid/auth-service/pkg/api"
	"github.com/eduaid/auth-service/pkg/auth"
	"github.com/eduaid/auth-service/pkg/config"
	"github.com/eduaid/auth-service/pkg/middleware"
	"github.com/eduaid/auth-service/pkg/observability"
	"github.com/eduaid/auth-service/pkg/revocation"
	"github.com/eduaid/auth-service/pkg/storage"
	"github.com/eduaid/auth-service/pkg/storage/postgres"
	"github.com/eduaid/auth-service/pkg/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("authd exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := observability.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.WithFields(logrus.Fields{
		"storage": cfg.Storage.Type,
		"port":    cfg.Server.Port,
	}).Info("starting authd")

	users, err := openUserStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open user store: %w", err)
	}
	defer users.Close()

	revoker, err := revocation.NewRedisStore(cfg.Revocation)
	if err != nil {
		return fmt.Errorf("connect revocation store: %w", err)
	}
	defer revoker.Close()

	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.Log.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
	}

	issuer := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	service := auth.NewService(users, revoker, issuer, hasher, log)

	gate := middleware.NewAuth(issuer, revoker, log)
	if metrics != nil {
		gate = gate.WithRevocationFailureCounter(metrics.RevocationCheckFailures).
			WithVerificationCounter(metrics.TokenVerificationsTotal)
	}

	sessions := api.NewSessionHandlers(service, gate, cfg.Auth.TokenTTL, log, metrics)
	server := api.NewServer(sessions, log, api.ServerOptions{
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	var handler http.Handler = server
	if metrics != nil {
		handler = observability.HTTPMetricsMiddleware(metrics)(handler)
	}

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Probes and scrapes live on their own listener so they stay reachable
	// even when the public port is saturated.
	opsMux := http.NewServeMux()
	checker := observability.NewHealthChecker(users, revoker)
	observability.RegisterHealthRoutes(opsMux, checker)
	if cfg.Log.MetricsEnabled {
		observability.RegisterMetricsEndpoint(opsMux, registry)
	}
	opsServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler:     opsMux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 2)
	go func() {
		log.WithField("addr", apiServer.Addr).Info("API server listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server: %w", err)
		}
	}()
	go func() {
		log.WithField("addr", opsServer.Addr).Info("health/metrics server listening")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("health server: %w", err)
		}
	}()

	// The stores are closed by the defers above once run returns; the
	// shutdown manager only drains the listeners.
	shutdown := observability.NewShutdownManager(log, cfg.Server.ShutdownTimeout, apiServer, opsServer)

	shutdownDone := make(chan error, 1)
	go func() {
		shutdownDone <- shutdown.WaitForShutdown()
	}()

	select {
	case err := <-errChan:
		return err
	case err := <-shutdownDone:
		return err
	}
}

// openUserStore dials the credential store selected by configuration.
func openUserStore(cfg storage.Config) (storage.UserStore, error) {
	switch cfg.Type {
	case storage.TypePostgres:
		return postgres.Connect(cfg)
	case storage.TypeSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case storage.TypeMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
