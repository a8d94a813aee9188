package usecase

import (
	"context"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/repository"
)

// StatsUsecase reports mastery counts.
type StatsUsecase interface {
	Stats(ctx context.Context, userID entity.UserID, sessionIDs entity.WordIDSet) (*entity.Stats, error)
}

type statsUsecase struct {
	words    repository.WordRepository
	progress repository.ProgressRepository
}

func NewStatsUsecase(words repository.WordRepository, progress repository.ProgressRepository) StatsUsecase {
	return &statsUsecase{words: words, progress: progress}
}

// Stats counts the whole bank and, for a non-empty id set, the session
// subset. Stale ids still count toward SessionTotal.
func (u *statsUsecase) Stats(ctx context.Context, userID entity.UserID, sessionIDs entity.WordIDSet) (*entity.Stats, error) {
	total, err := u.words.Count(ctx)
	if err != nil {
		return nil, err
	}
	mastered, err := u.progress.CountMastered(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	stats := &entity.Stats{Total: total, Mastered: mastered}
	if sessionIDs.Empty() {
		return stats, nil
	}

	sessionTotal := int64(sessionIDs.Len())
	sessionMastered, err := u.progress.CountMastered(ctx, userID, sessionIDs.IDs())
	if err != nil {
		return nil, err
	}
	stats.SessionTotal = &sessionTotal
	stats.SessionMastered = &sessionMastered
	return stats, nil
}
