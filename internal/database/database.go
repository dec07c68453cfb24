// Package database provides PostgreSQL connection management using pgx.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/config"
)

// NewPool creates and validates a pgxpool connection pool.
// It retries up to 5 times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	// Sensible pool defaults for a small service.
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= 5; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			pingErr := pool.Ping(ctx)
			if pingErr == nil {
				return pool, nil
			}
			err = pingErr
			pool.Close()
		}
		log.Warn("db connect failed, retrying in 2s",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("connect to postgres: %w", err)
}

// EnsureSchema creates the tables and constraints the application relies on.
// The unique indexes on registrations back the application-level duplicate
// and confirmation-id checks, so races cannot slip past them.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                 BIGSERIAL PRIMARY KEY,
			email              TEXT NOT NULL UNIQUE,
			hashed_password    TEXT NOT NULL,
			full_name          TEXT NOT NULL,
			role               TEXT NOT NULL DEFAULT 'user',
			is_active          BOOLEAN NOT NULL DEFAULT TRUE,
			is_approved        BOOLEAN NOT NULL DEFAULT TRUE,
			rejection_reason   TEXT,
			admin_comment      TEXT,
			is_company         BOOLEAN NOT NULL DEFAULT FALSE,
			additional_details TEXT,
			id_proof_url       TEXT,
			phone              TEXT,
			city               TEXT,
			state              TEXT,
			country            TEXT,
			linkedin_url       TEXT,
			youtube_url        TEXT,
			facebook_url       TEXT,
			twitter_url        TEXT,
			instagram_url      TEXT,
			about_me           TEXT,
			gender             TEXT,
			dob                TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id           BIGSERIAL PRIMARY KEY,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			start_time   TIMESTAMPTZ NOT NULL,
			end_time     TIMESTAMPTZ NOT NULL,
			location     TEXT NOT NULL DEFAULT '',
			event_type   TEXT NOT NULL,
			capacity     INTEGER NOT NULL CHECK (capacity > 0),
			status       TEXT NOT NULL DEFAULT 'published',
			is_active    BOOLEAN NOT NULL DEFAULT TRUE,
			organizer_id BIGINT NOT NULL REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS registrations (
			id                BIGSERIAL PRIMARY KEY,
			user_id           BIGINT NOT NULL REFERENCES users(id),
			event_id          BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			status            TEXT NOT NULL DEFAULT 'pending',
			registration_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			confirmation_id   TEXT NOT NULL UNIQUE,
			attended          BOOLEAN NOT NULL DEFAULT FALSE,
			rejection_reason  TEXT,
			UNIQUE (user_id, event_id)
		)`,
	}

	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
