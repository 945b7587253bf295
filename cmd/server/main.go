package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/medidesk/hospital-admin-bff/internal/api/router"
	"github.com/medidesk/hospital-admin-bff/internal/backend"
	appconfig "github.com/medidesk/hospital-admin-bff/internal/config"
	"github.com/medidesk/hospital-admin-bff/internal/http/handlers"
	"github.com/medidesk/hospital-admin-bff/internal/observability/metrics"
	"github.com/medidesk/hospital-admin-bff/internal/session"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting hospital-admin-bff server",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.BackendBaseURL,
	)

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	sessionStore := session.NewStore(redisClient, cfg.SessionTTL)
	sessions := session.NewManager(sessionStore, logger,
		cfg.SessionSecret, cfg.SessionCookieName, cfg.SessionTTL, cfg.SecureCookies)

	backendMetrics := metrics.NewBackendMetrics(nil)
	client := backend.NewClient(cfg.BackendBaseURL, logger,
		backend.WithTimeout(cfg.BackendTimeout),
		backend.WithObserver(backendMetrics),
	)
	// A backend 401 means the session's token is stale; tear the session down
	// so the next request redirects to login.
	client.OnUnauthorized(sessions.Invalidate)

	routerCfg := &router.Config{
		Logger:             logger,
		Sessions:           sessions,
		Auth:               handlers.NewAuthHandler(client, sessions, logger),
		Dashboard:          handlers.NewDashboardHandler(client, logger),
		Patients:           handlers.NewPatientsHandler(client, logger),
		Doctors:            handlers.NewDoctorsHandler(client, logger),
		Appointments:       handlers.NewAppointmentsHandler(client, logger),
		Records:            handlers.NewRecordsHandler(client, logger),
		Users:              handlers.NewUsersHandler(client, logger),
		Activities:         handlers.NewActivitiesHandler(client, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LoginRatePerSecond: 2,
		LoginBurst:         5,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("redis close failed", "error", err)
	}

	logger.Info("server stopped")
}
