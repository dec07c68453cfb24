// Package config reads application settings from environment variables,
// with a .env file honoured for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server needs.
type Config struct {
	Port        string
	Environment string // "development" or "production"

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir string
}

// Load reads configuration from the environment, falling back to sensible
// local-development defaults. A .env file in the working directory is loaded
// first if present; real environment variables take precedence over it.
func Load() (Config, error) {
	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "eventplatform"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" {
			return Config{}, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	ttlMinutes, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "480"))
	if err != nil || ttlMinutes <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_MINUTES must be a positive integer")
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

// DSN builds a libpq-compatible connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
