package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/infrastructure/database"
)

// store is embedded by every sqlx repository. It resolves the ambient
// transaction and bounds each statement by the configured query timeout.
type store struct {
	db      *sqlx.DB
	timeout time.Duration
}

func newStore(db *sqlx.DB, cfg *config.Config) store {
	s := store{db: db}
	if cfg != nil {
		s.timeout = cfg.Database.QueryTimeout
	}
	return s
}

func (s store) conn(ctx context.Context) (context.Context, database.Querier, context.CancelFunc) {
	q := database.Conn(ctx, s.db)
	if s.timeout <= 0 {
		return ctx, q, func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return ctx, q, cancel
}

// in expands "?" bound slices with sqlx.In and rebinds for the driver.
func in(q database.Querier, query string, args ...any) (string, []any, error) {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return q.Rebind(query), args, nil
}
