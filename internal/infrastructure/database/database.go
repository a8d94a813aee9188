package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/spellnet/internal/infrastructure/config"
)

// NewDB opens the sqlx handle for the configured driver. The returned cleanup
// releases the handle and, for pgx, the underlying pool.
func NewDB(cfg *config.Config, logger *logrus.Logger) (*sqlx.DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database driver: %w", err)
	}

	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database dsn: %w", err)
	}

	switch driver {
	case config.DriverPostgres:
		return newPostgresDB(cfg, dsn)
	case config.DriverPGX:
		return newPGXDB(cfg, logger)
	case config.DriverSQLite:
		return newSQLiteDB(dsn)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func newPostgresDB(cfg *config.Config, dsn string) (*sqlx.DB, func(), error) {
	db, err := sqlx.Open(config.DriverPostgres, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres db: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping postgres db: %w", err)
	}

	return db, func() {
		_ = db.Close()
	}, nil
}

func newPGXDB(cfg *config.Config, logger *logrus.Logger) (*sqlx.DB, func(), error) {
	pool, err := NewPool(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), config.DriverPGX)

	return db, func() {
		_ = db.Close()
		pool.Close()
	}, nil
}

func newSQLiteDB(dsn string) (*sqlx.DB, func(), error) {
	db, err := sqlx.Open(config.DriverSQLite, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}

	return db, func() {
		_ = db.Close()
	}, nil
}
