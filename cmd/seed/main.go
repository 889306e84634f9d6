// seed inserts a development admin user for local testing.
// Idempotent: skips the insert when the user already exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bizconnect/backend/internal/config"
	"bizconnect/backend/internal/db"
	"bizconnect/backend/internal/security"
	"bizconnect/backend/internal/session"
	sessionrepo "bizconnect/backend/internal/session/repository"
	userrepo "bizconnect/backend/internal/user/repository"
	userservice "bizconnect/backend/internal/user/service"
)

const (
	devUsername = "admin"
	devPassword = "password123"
	devEmail    = "admin@example.com"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	sessions := session.NewStore(
		sessionrepo.NewPostgresRepository(conn),
		cfg.SessionDuration(),
		cfg.PersistentSessionDuration(),
	)
	hasher := security.NewHasher(cfg.BcryptCost)
	directory := userservice.NewDirectory(users, sessions, hasher, nil, nil)

	_, err = directory.Provision(context.Background(), devUsername, devPassword, devEmail, "Dev", "Admin")
	if errors.Is(err, userservice.ErrUsernameTaken) {
		log.Println("Seed already applied (admin exists). Skipping.")
		return
	}
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Dev login: %s / %s\n", devUsername, devPassword)
}
