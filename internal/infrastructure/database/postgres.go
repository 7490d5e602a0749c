package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	appconfig "ingressos_checkout/internal/config"

	_ "github.com/lib/pq"
)

const (
	postgresMaxRetries = 10
	postgresRetryDelay = 2 * time.Second
)

// NewPostgresDB opens the event catalog database, retrying while it starts up.
func NewPostgresDB(ctx context.Context, cfg appconfig.PostgresConfig) (*sql.DB, error) {
	connStr := PostgresDSN(cfg)

	var (
		db  *sql.DB
		err error
	)
	for i := 1; i <= postgresMaxRetries; i++ {
		log.Printf("[checkout][database] connecting to postgres attempt=%d/%d", i, postgresMaxRetries)
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.PingContext(ctx)
		}
		if err == nil {
			db.SetMaxOpenConns(10)
			db.SetConnMaxIdleTime(5 * time.Minute)
			log.Printf("[checkout][database] postgres connected")
			return db, nil
		}
		if db != nil {
			_ = db.Close()
		}

		log.Printf("[checkout][database] postgres not ready err=%v", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(postgresRetryDelay):
		}
	}

	return nil, fmt.Errorf("failed connecting to postgres: %w", err)
}

// PostgresDSN prefers DATABASE_URL and otherwise builds the DSN from parts.
func PostgresDSN(cfg appconfig.PostgresConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
}
