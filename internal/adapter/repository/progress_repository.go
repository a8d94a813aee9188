package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/repository"
)

type progressRow struct {
	ID             int64     `db:"progress_id"`
	UserID         int64     `db:"user_id"`
	WordID         int64     `db:"word_id"`
	CorrectStreak  int       `db:"correct_streak"`
	IsMastered     bool      `db:"is_mastered"`
	LastAnsweredAt time.Time `db:"last_answered_timestamp"`
}

type progressRepository struct{ store }

// NewProgressRepository constructs a sqlx-backed progress store.
func NewProgressRepository(db *sqlx.DB, cfg *config.Config) repository.ProgressRepository {
	return &progressRepository{store: newStore(db, cfg)}
}

func (r *progressRepository) Get(ctx context.Context, userID entity.UserID, wordID int64) (*entity.Progress, error) {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	var row progressRow
	query := q.Rebind(`SELECT progress_id, user_id, word_id, correct_streak, is_mastered, last_answered_timestamp
		FROM user_progress WHERE user_id = ? AND word_id = ?`)
	if err := sqlx.GetContext(ctx, q, &row, query, int64(userID), wordID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &entity.Progress{
		UserID:         entity.UserID(row.UserID),
		WordID:         row.WordID,
		CorrectStreak:  row.CorrectStreak,
		IsMastered:     row.IsMastered,
		LastAnsweredAt: row.LastAnsweredAt,
	}, nil
}

func (r *progressRepository) Upsert(ctx context.Context, progress *entity.Progress) error {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	query := q.Rebind(`INSERT INTO user_progress (user_id, word_id, correct_streak, is_mastered, last_answered_timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			correct_streak = excluded.correct_streak,
			is_mastered = excluded.is_mastered,
			last_answered_timestamp = excluded.last_answered_timestamp`)
	answeredAt := progress.LastAnsweredAt
	if answeredAt.IsZero() {
		answeredAt = time.Now()
	}
	_, err := q.ExecContext(ctx, query,
		int64(progress.UserID),
		progress.WordID,
		progress.CorrectStreak,
		entity.MasteryFrom(progress.CorrectStreak),
		answeredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", translateError(err))
	}
	return nil
}

func (r *progressRepository) ListEligibleWordIDs(ctx context.Context, userID entity.UserID, query repository.EligibilityQuery) ([]int64, error) {
	if query.Restrict != nil && len(query.Restrict) == 0 {
		return []int64{}, nil
	}

	var stmt string
	args := []any{int64(userID)}
	switch query.Eligibility {
	case repository.EligibleMastered:
		stmt = `SELECT p.word_id FROM user_progress p JOIN words w ON w.word_id = p.word_id
			WHERE p.user_id = ? AND p.is_mastered = ?`
		args = append(args, true)
		if query.Restrict != nil {
			stmt += ` AND p.word_id IN (?)`
			args = append(args, query.Restrict)
		}
		stmt += ` ORDER BY p.word_id`
	default:
		stmt = `SELECT w.word_id FROM words w LEFT JOIN user_progress p ON p.word_id = w.word_id AND p.user_id = ?
			WHERE (p.progress_id IS NULL OR p.is_mastered = ?)`
		args = append(args, false)
		if query.Restrict != nil {
			stmt += ` AND w.word_id IN (?)`
			args = append(args, query.Restrict)
		}
		stmt += ` ORDER BY w.word_id`
	}

	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	stmt, args, err := in(q, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("build eligible query: %w", err)
	}
	ids := []int64{}
	if err := sqlx.SelectContext(ctx, q, &ids, stmt, args...); err != nil {
		return nil, fmt.Errorf("list eligible words: %w", err)
	}
	return ids, nil
}

func (r *progressRepository) CountMastered(ctx context.Context, userID entity.UserID, restrict []int64) (int64, error) {
	if restrict != nil && len(restrict) == 0 {
		return 0, nil
	}

	stmt := `SELECT COUNT(*) FROM user_progress WHERE user_id = ? AND is_mastered = ?`
	args := []any{int64(userID), true}
	if restrict != nil {
		stmt += ` AND word_id IN (?)`
		args = append(args, restrict)
	}

	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	stmt, args, err := in(q, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("build mastered count: %w", err)
	}
	var count int64
	if err := sqlx.GetContext(ctx, q, &count, stmt, args...); err != nil {
		return 0, fmt.Errorf("count mastered: %w", err)
	}
	return count, nil
}

func (r *progressRepository) MasteredWordIDs(ctx context.Context, userID entity.UserID) ([]int64, error) {
	return r.ListEligibleWordIDs(ctx, userID, repository.EligibilityQuery{Eligibility: repository.EligibleMastered})
}
