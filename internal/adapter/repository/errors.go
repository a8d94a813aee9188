package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/eslsoft/spellnet/internal/entity"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver errors onto domain sentinels. Errors it does not
// recognise are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return entity.ErrDuplicateWord
		case pgForeignKeyViolation:
			return entity.ErrWordNotFound
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return entity.ErrDuplicateWord
		case pgForeignKeyViolation:
			return entity.ErrWordNotFound
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return entity.ErrDuplicateWord
		case sqlite3.ErrConstraintForeignKey:
			return entity.ErrWordNotFound
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrWordNotFound
	}
	return err
}
