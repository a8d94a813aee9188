package repository

import (
	"context"

	"github.com/eslsoft/spellnet/internal/entity"
)

// ListWordQuery holds parameters for listing the word bank. Filter and
// OrderBy are CEL / order_by expressions bound by the adapter.
type ListWordQuery struct {
	Pagination
	FilterOrder

	Tag string
}

// WordRepository defines data access for word entries.
type WordRepository interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	Update(ctx context.Context, word *entity.Word) (*entity.Word, error)
	GetByID(ctx context.Context, id int64) (*entity.Word, error)
	List(ctx context.Context, query *ListWordQuery) ([]*entity.Word, int64, error)
	ListAll(ctx context.Context) ([]*entity.Word, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
	// InsertIgnore inserts the word unless its english spelling already
	// exists. It reports whether a row was written.
	InsertIgnore(ctx context.Context, word *entity.Word) (bool, error)
}
