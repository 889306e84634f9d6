// Worker deletes expired session rows on an interval. The request path never
// deletes; expired sessions just stop validating, and this process sweeps
// them out of band. PURGE_INTERVAL controls the cadence (default 1h).
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bizconnect/backend/internal/config"
	"bizconnect/backend/internal/db"
	"bizconnect/backend/internal/logging"
	"bizconnect/backend/internal/session"
	sessionrepo "bizconnect/backend/internal/session/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer conn.Close()

	store := session.NewStore(
		sessionrepo.NewPostgresRepository(conn),
		cfg.SessionDuration(),
		cfg.PersistentSessionDuration(),
	)

	interval := time.Hour
	if raw := os.Getenv("PURGE_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			interval = d
		} else {
			logger.Warn("invalid PURGE_INTERVAL, using default", zap.String("value", raw))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("worker: shutting down")
		cancel()
	}()

	logger.Info("worker: purging expired sessions", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	purge := func() {
		purgeCtx, purgeCancel := context.WithTimeout(ctx, 30*time.Second)
		defer purgeCancel()
		n, err := store.PurgeExpired(purgeCtx)
		if err != nil {
			logger.Error("worker: purge failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("worker: purged expired sessions", zap.Int64("count", n))
		}
	}

	purge()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker: stopped")
			return
		case <-ticker.C:
			purge()
		}
	}
}
