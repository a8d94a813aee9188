package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/infrastructure/database/types"
	"github.com/eslsoft/spellnet/internal/repository"
)

type sessionRepository struct{ store }

// NewSessionRepository stores the selection as a JSON id array, one row per
// user.
func NewSessionRepository(db *sqlx.DB, cfg *config.Config) repository.SessionRepository {
	return &sessionRepository{store: newStore(db, cfg)}
}

func (r *sessionRepository) Get(ctx context.Context, userID entity.UserID) (*entity.SessionSelection, error) {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	var ids types.WordIDList
	query := q.Rebind(`SELECT selected_word_ids FROM current_practice_session WHERE user_id = ?`)
	if err := sqlx.GetContext(ctx, q, &ids, query, int64(userID)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.SessionSelection{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &entity.SessionSelection{UserID: userID, WordIDs: entity.NewWordIDSet(ids)}, nil
}

func (r *sessionRepository) Replace(ctx context.Context, selection *entity.SessionSelection) error {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	query := q.Rebind(`INSERT INTO current_practice_session (user_id, selected_word_ids) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET selected_word_ids = excluded.selected_word_ids`)
	ids := types.WordIDList(selection.WordIDs.IDs())
	if _, err := q.ExecContext(ctx, query, int64(selection.UserID), ids); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}
