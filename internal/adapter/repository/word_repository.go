package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/repository"
	"github.com/eslsoft/spellnet/pkg/filterexpr"
)

const wordColumns = `word_id, english_word, chinese_definition, example_sentence_en, example_sentence_cn, week_tag, added_timestamp`

type wordRow struct {
	ID                int64          `db:"word_id"`
	EnglishWord       string         `db:"english_word"`
	ChineseDefinition string         `db:"chinese_definition"`
	ExampleSentenceEN sql.NullString `db:"example_sentence_en"`
	ExampleSentenceCN sql.NullString `db:"example_sentence_cn"`
	WeekTag           sql.NullString `db:"week_tag"`
	AddedAt           time.Time      `db:"added_timestamp"`
}

type wordRepository struct{ store }

// NewWordRepository constructs a sqlx-backed word bank.
func NewWordRepository(db *sqlx.DB, cfg *config.Config) repository.WordRepository {
	return &wordRepository{store: newStore(db, cfg)}
}

func (r *wordRepository) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	created := *word
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	query := q.Rebind(`INSERT INTO words (english_word, chinese_definition, example_sentence_en, example_sentence_cn, week_tag, added_timestamp)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING word_id`)
	if err := sqlx.GetContext(ctx, q, &created.ID, query, wordArgs(&created)...); err != nil {
		return nil, fmt.Errorf("create word: %w", translateError(err))
	}
	return &created, nil
}

func (r *wordRepository) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	qctx, q, cancel := r.conn(ctx)
	defer cancel()

	query := q.Rebind(`UPDATE words SET english_word = ?, chinese_definition = ?, example_sentence_en = ?,
		example_sentence_cn = ?, week_tag = ? WHERE word_id = ?`)
	res, err := q.ExecContext(qctx, query,
		word.EnglishWord,
		word.ChineseDefinition,
		nullString(word.ExampleSentenceEN),
		nullString(word.ExampleSentenceCN),
		nullString(word.WeekTag),
		word.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update word: %w", translateError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update word: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrWordNotFound
	}
	return r.GetByID(ctx, word.ID)
}

func (r *wordRepository) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	var row wordRow
	query := q.Rebind(`SELECT ` + wordColumns + ` FROM words WHERE word_id = ?`)
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		return nil, fmt.Errorf("get word: %w", translateError(err))
	}
	return mapWordRow(row), nil
}

func (r *wordRepository) List(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, int64, error) {
	where, err := filterexpr.Compile(query.Filter, listWordsSchema.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrInvalidFilter, err)
	}
	orderBy, err := filterexpr.OrderBy(query.OrderBy, listWordsSchema.Order)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: order_by: %v", entity.ErrInvalidFilter, err)
	}
	if tag := strings.TrimSpace(query.Tag); tag != "" {
		where = filterexpr.And(where, filterexpr.Clause{SQL: "week_tag = ?", Args: []any{tag}})
	}

	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	whereSQL := ""
	if where.SQL != "" {
		whereSQL = " WHERE " + where.SQL
	}

	var total int64
	if err := sqlx.GetContext(ctx, q, &total, q.Rebind(`SELECT COUNT(*) FROM words`+whereSQL), where.Args...); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	stmt := `SELECT ` + wordColumns + ` FROM words` + whereSQL + ` ORDER BY ` + orderBy
	args := append([]any{}, where.Args...)
	if query.PageSize > 0 {
		stmt += ` LIMIT ? OFFSET ?`
		args = append(args, query.PageSize, query.Offset())
	}
	var rows []wordRow
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(stmt), args...); err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	return mapWordRows(rows), total, nil
}

func (r *wordRepository) ListAll(ctx context.Context) ([]*entity.Word, error) {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	var rows []wordRow
	if err := sqlx.SelectContext(ctx, q, &rows, `SELECT `+wordColumns+` FROM words ORDER BY word_id`); err != nil {
		return nil, fmt.Errorf("list all words: %w", err)
	}
	return mapWordRows(rows), nil
}

func (r *wordRepository) Count(ctx context.Context) (int64, error) {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	var total int64
	if err := sqlx.GetContext(ctx, q, &total, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return total, nil
}

// Delete removes the word and its progress rows. The progress delete is
// explicit so SQLite connections opened without foreign keys behave the same.
func (r *wordRepository) Delete(ctx context.Context, id int64) error {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	if _, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM user_progress WHERE word_id = ?`), id); err != nil {
		return fmt.Errorf("delete word progress: %w", err)
	}
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM words WHERE word_id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	if affected == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) InsertIgnore(ctx context.Context, word *entity.Word) (bool, error) {
	ctx, q, cancel := r.conn(ctx)
	defer cancel()

	row := *word
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	query := q.Rebind(`INSERT INTO words (english_word, chinese_definition, example_sentence_en, example_sentence_cn, week_tag, added_timestamp)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`)
	res, err := q.ExecContext(ctx, query, wordArgs(&row)...)
	if err != nil {
		return false, fmt.Errorf("insert word: %w", translateError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert word: %w", err)
	}
	return affected > 0, nil
}

func wordArgs(word *entity.Word) []any {
	return []any{
		word.EnglishWord,
		word.ChineseDefinition,
		nullString(word.ExampleSentenceEN),
		nullString(word.ExampleSentenceCN),
		nullString(word.WeekTag),
		word.CreatedAt.UTC(),
	}
}

func mapWordRow(row wordRow) *entity.Word {
	return &entity.Word{
		ID:                row.ID,
		EnglishWord:       row.EnglishWord,
		ChineseDefinition: row.ChineseDefinition,
		ExampleSentenceEN: row.ExampleSentenceEN.String,
		ExampleSentenceCN: row.ExampleSentenceCN.String,
		WeekTag:           row.WeekTag.String,
		CreatedAt:         row.AddedAt,
	}
}

func mapWordRows(rows []wordRow) []*entity.Word {
	words := make([]*entity.Word, 0, len(rows))
	for _, row := range rows {
		words = append(words, mapWordRow(row))
	}
	return words
}

func nullString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}
