package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizconnect/backend/internal/audit"
	auditrepo "bizconnect/backend/internal/audit/repository"
	authhandler "bizconnect/backend/internal/auth/handler"
	authservice "bizconnect/backend/internal/auth/service"
	"bizconnect/backend/internal/config"
	"bizconnect/backend/internal/db"
	"bizconnect/backend/internal/logging"
	"bizconnect/backend/internal/security"
	"bizconnect/backend/internal/server"
	"bizconnect/backend/internal/session"
	sessionrepo "bizconnect/backend/internal/session/repository"
	userrepo "bizconnect/backend/internal/user/repository"

	"go.uber.org/zap"
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

	users := userrepo.NewPostgresRepository(conn)
	sessions := session.NewStore(
		sessionrepo.NewPostgresRepository(conn),
		cfg.SessionDuration(),
		cfg.PersistentSessionDuration(),
	)
	auditor := audit.NewAsync(audit.NewLogger(auditrepo.NewPostgresRepository(conn), logger))
	hasher := security.NewHasher(cfg.BcryptCost)

	authSvc := authservice.NewAuthService(users, sessions, hasher, logger, auditor)

	router := server.NewRouter(server.Deps{
		Auth:         authhandler.New(authSvc, sessions, cfg, logger),
		HealthPinger: conn,
		Log:          logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("http server stopped")
}
