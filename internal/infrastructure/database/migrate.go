package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/spellnet/internal/infrastructure/config"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
		word_id INTEGER PRIMARY KEY AUTOINCREMENT,
		english_word TEXT NOT NULL,
		chinese_definition TEXT NOT NULL,
		example_sentence_en TEXT,
		example_sentence_cn TEXT,
		week_tag TEXT,
		added_timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS words_english_word_key ON words (lower(english_word))`,
	`CREATE INDEX IF NOT EXISTS words_week_tag_idx ON words (week_tag)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		progress_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		word_id INTEGER NOT NULL REFERENCES words (word_id) ON DELETE CASCADE,
		correct_streak INTEGER NOT NULL DEFAULT 0,
		is_mastered BOOLEAN NOT NULL DEFAULT 0,
		last_answered_timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, word_id)
	)`,
	`CREATE TABLE IF NOT EXISTS current_practice_session (
		user_id INTEGER PRIMARY KEY,
		selected_word_ids TEXT NOT NULL DEFAULT '[]'
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
		word_id BIGSERIAL PRIMARY KEY,
		english_word TEXT NOT NULL,
		chinese_definition TEXT NOT NULL,
		example_sentence_en TEXT,
		example_sentence_cn TEXT,
		week_tag TEXT,
		added_timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS words_english_word_key ON words (lower(english_word))`,
	`CREATE INDEX IF NOT EXISTS words_week_tag_idx ON words (week_tag)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		progress_id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		word_id BIGINT NOT NULL REFERENCES words (word_id) ON DELETE CASCADE,
		correct_streak INTEGER NOT NULL DEFAULT 0 CHECK (correct_streak >= 0),
		is_mastered BOOLEAN NOT NULL DEFAULT FALSE,
		last_answered_timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, word_id)
	)`,
	`CREATE TABLE IF NOT EXISTS current_practice_session (
		user_id BIGINT PRIMARY KEY,
		selected_word_ids TEXT NOT NULL DEFAULT '[]'
	)`,
}

// Migrate creates the tables the trainer needs. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts := sqliteSchema
	if db.DriverName() != config.DriverSQLite {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
