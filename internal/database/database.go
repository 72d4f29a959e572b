package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"

	"carlot/internal/config"
)

const (
	pingTimeout    = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Open connects to Postgres with the pool sized from cfg and waits, for at
// most cfg.ConnectTimeout, until the server answers a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(max(maxOpen/2, 1))
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := waitReady(ctx, db, cfg.ConnectTimeout, initialBackoff); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// waitReady pings until success, ctx cancellation, or maxWait elapses. The
// delay between attempts doubles up to maxBackoff.
func waitReady(ctx context.Context, db pinger, maxWait, backoff time.Duration) error {
	deadline := time.Now().Add(maxWait)

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		if time.Now().Add(backoff).After(deadline) {
			return fmt.Errorf("ping database after %d attempts: %w", attempt, err)
		}

		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", backoff).Msg("database not ready")

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("ping database: %w", ctx.Err())
		case <-timer.C:
		}

		backoff = min(backoff*2, maxBackoff)
	}
}
