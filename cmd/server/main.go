// cmd/server is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/auth"
	"github.com/rahulnair-dev/event-platform/internal/config"
	"github.com/rahulnair-dev/event-platform/internal/database"
	"github.com/rahulnair-dev/event-platform/internal/handler"
	"github.com/rahulnair-dev/event-platform/internal/repository"
	"github.com/rahulnair-dev/event-platform/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("schema", zap.Error(err))
	}
	logger.Info("connected to postgres", zap.String("db", cfg.DBName))

	// Wire up layers.
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)

	userSvc := service.NewUserService(userRepo, tokens, logger)
	eventSvc := service.NewEventService(eventRepo, logger)
	regSvc := service.NewRegistrationService(regRepo, eventRepo, logger)

	router := handler.NewRouter(handler.Deps{
		Auth:          handler.NewAuthHandler(userSvc),
		Events:        handler.NewEventHandler(eventSvc),
		Registrations: handler.NewRegistrationHandler(regSvc),
		Users:         handler.NewUserHandler(userSvc, cfg.UploadDir),
		Tokens:        tokens,
		Log:           logger,
		UploadDir:     cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
