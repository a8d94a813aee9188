package repository

import (
	"context"

	"github.com/eslsoft/spellnet/internal/entity"
)

// SessionRepository stores the learner's current practice selection.
type SessionRepository interface {
	// Get returns an empty selection when none was saved yet.
	Get(ctx context.Context, userID entity.UserID) (*entity.SessionSelection, error)
	// Replace overwrites the whole stored set.
	Replace(ctx context.Context, selection *entity.SessionSelection) error
}
