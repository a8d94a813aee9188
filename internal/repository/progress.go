package repository

import (
	"context"

	"github.com/eslsoft/spellnet/internal/entity"
)

// Eligibility picks which side of the mastery split a pool query returns.
type Eligibility int

const (
	// EligibleUnmastered matches words with no progress row or is_mastered=false.
	EligibleUnmastered Eligibility = iota
	// EligibleMastered matches words whose progress row is mastered.
	EligibleMastered
)

// EligibilityQuery narrows an eligible id pool. A nil Restrict means the
// whole catalogue.
type EligibilityQuery struct {
	Eligibility Eligibility
	Restrict    []int64
}

// ProgressRepository persists per (user, word) mastery state.
type ProgressRepository interface {
	// Get returns nil without error when no row exists.
	Get(ctx context.Context, userID entity.UserID, wordID int64) (*entity.Progress, error)
	// Upsert inserts or overwrites the row keyed by (user, word).
	Upsert(ctx context.Context, progress *entity.Progress) error
	ListEligibleWordIDs(ctx context.Context, userID entity.UserID, query EligibilityQuery) ([]int64, error)
	// CountMastered counts mastered rows, limited to restrict when non-nil.
	CountMastered(ctx context.Context, userID entity.UserID, restrict []int64) (int64, error)
	MasteredWordIDs(ctx context.Context, userID entity.UserID) ([]int64, error)
}
