// cmd/seedadmin creates the bootstrap admin account if it does not exist.
// Intended to be run once against a fresh database.
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/auth"
	"github.com/rahulnair-dev/event-platform/internal/config"
	"github.com/rahulnair-dev/event-platform/internal/database"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("schema", zap.Error(err))
	}

	var exists bool
	err = pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		logger.Fatal("check admin", zap.Error(err))
	}
	if exists {
		logger.Info("admin account already exists", zap.String("email", email))
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logger.Fatal("hash password", zap.Error(err))
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (email, hashed_password, full_name, role, is_active, is_approved)
		 VALUES ($1, $2, 'System Admin', 'admin', TRUE, TRUE)`,
		email, hashed,
	)
	if err != nil {
		logger.Fatal("insert admin", zap.Error(err))
	}
	logger.Info("admin account created", zap.String("email", email))
}
