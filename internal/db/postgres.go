package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the tutor directory read by tutor.PgRepository. Weekdays follow
// time.Weekday, Sunday = 0.
const Schema = `
CREATE TABLE IF NOT EXISTS tutors (
	id          uuid PRIMARY KEY,
	name        text NOT NULL UNIQUE,
	subjects    text[] NOT NULL DEFAULT '{}',
	hourly_rate double precision NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tutor_availability_rates (
	tutor_id uuid NOT NULL REFERENCES tutors(id) ON DELETE CASCADE,
	weekday  smallint NOT NULL CHECK (weekday BETWEEN 0 AND 6),
	rate     double precision NOT NULL CHECK (rate > 0 AND rate <= 1),
	PRIMARY KEY (tutor_id, weekday)
);
`

func ConnectPostgres(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	if maxConns < 1 {
		maxConns = 10
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the directory tables if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
