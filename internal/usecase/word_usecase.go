package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/repository"
)

// WordUsecase defines business logic for the word bank.
type WordUsecase interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	Update(ctx context.Context, word *entity.Word) (*entity.Word, error)
	Get(ctx context.Context, id int64) (*entity.Word, error)
	List(ctx context.Context, userID entity.UserID, query *repository.ListWordQuery) ([]*entity.WordListItem, int64, error)
	Delete(ctx context.Context, id int64) error
}

// A zero page size lists the whole bank.
const _maxPageSize = int32(1000)

type wordUsecase struct {
	repo     repository.WordRepository
	progress repository.ProgressRepository
	sessions repository.SessionRepository
	tx       repository.Transactor
	clock    func() time.Time
}

func NewWordUsecase(
	repo repository.WordRepository,
	progress repository.ProgressRepository,
	sessions repository.SessionRepository,
	tx repository.Transactor,
) WordUsecase {
	return &wordUsecase{repo: repo, progress: progress, sessions: sessions, tx: tx, clock: time.Now}
}

func (u *wordUsecase) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	norm, err := normalizeWordForUpsert(word)
	if err != nil {
		return nil, err
	}
	norm.ID = 0
	norm.CreatedAt = u.clock().UTC()
	return u.repo.Create(ctx, norm)
}

func (u *wordUsecase) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	norm, err := normalizeWordForUpsert(word)
	if err != nil {
		return nil, err
	}
	if norm.ID <= 0 {
		return nil, entity.ErrInvalidWordID
	}
	return u.repo.Update(ctx, norm)
}

func (u *wordUsecase) Get(ctx context.Context, id int64) (*entity.Word, error) {
	if id <= 0 {
		return nil, entity.ErrInvalidWordID
	}
	return u.repo.GetByID(ctx, id)
}

// List returns a page of words, each flagged with the learner's mastery and
// whether it is in the saved selection.
func (u *wordUsecase) List(ctx context.Context, userID entity.UserID, query *repository.ListWordQuery) ([]*entity.WordListItem, int64, error) {
	if query == nil {
		query = &repository.ListWordQuery{}
	}
	query.Clamp(_maxPageSize)

	words, total, err := u.repo.List(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	masteredIDs, err := u.progress.MasteredWordIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	sel, err := u.sessions.Get(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	mastered := lo.Associate(masteredIDs, func(id int64) (int64, struct{}) { return id, struct{}{} })
	items := lo.Map(words, func(w *entity.Word, _ int) *entity.WordListItem {
		_, isMastered := mastered[w.ID]
		return &entity.WordListItem{Word: *w, IsMastered: isMastered, IsSelected: sel.WordIDs.Contains(w.ID)}
	})
	return items, total, nil
}

// Delete removes the word together with its progress rows.
func (u *wordUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return entity.ErrInvalidWordID
	}
	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.repo.Delete(ctx, id)
	})
}

func normalizeWordForUpsert(in *entity.Word) (*entity.Word, error) {
	if in == nil {
		return nil, errors.New("word payload required")
	}
	out := *in
	out.Normalize()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
