package usecase

import (
	"context"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/repository"
)

// SessionUsecase reads and replaces the saved practice selection.
type SessionUsecase interface {
	Current(ctx context.Context, userID entity.UserID) (*entity.SessionSelection, error)
	Replace(ctx context.Context, userID entity.UserID, ids []int64) (*entity.SessionSelection, error)
}

type sessionUsecase struct {
	repo repository.SessionRepository
}

func NewSessionUsecase(repo repository.SessionRepository) SessionUsecase {
	return &sessionUsecase{repo: repo}
}

func (u *sessionUsecase) Current(ctx context.Context, userID entity.UserID) (*entity.SessionSelection, error) {
	return u.repo.Get(ctx, userID)
}

// Replace stores ids as the whole selection. A nil slice is rejected; an
// empty one clears the selection.
func (u *sessionUsecase) Replace(ctx context.Context, userID entity.UserID, ids []int64) (*entity.SessionSelection, error) {
	if ids == nil {
		return nil, entity.ErrInvalidSelection
	}
	sel := &entity.SessionSelection{UserID: userID, WordIDs: entity.NewWordIDSet(ids)}
	if err := u.repo.Replace(ctx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}
