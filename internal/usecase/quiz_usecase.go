package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/repository"
)

// QuizUsecase picks practice words and grades spelling attempts.
type QuizUsecase interface {
	Next(ctx context.Context, userID entity.UserID, req entity.QuizRequest) (*entity.QuizWord, error)
	Submit(ctx context.Context, userID entity.UserID, wordID int64, attempt string) (*entity.SubmitResult, error)
	Reset(ctx context.Context, userID entity.UserID, wordID int64) (*entity.Progress, error)
}

// NewQuizUsecase wires the repositories with the real clock and random source.
func NewQuizUsecase(
	words repository.WordRepository,
	progress repository.ProgressRepository,
	sessions repository.SessionRepository,
	tx repository.Transactor,
) QuizUsecase {
	return &quizUsecase{
		words:    words,
		progress: progress,
		sessions: sessions,
		tx:       tx,
		clock:    time.Now,
		intn:     rand.IntN,
	}
}

type quizUsecase struct {
	words    repository.WordRepository
	progress repository.ProgressRepository
	sessions repository.SessionRepository
	tx       repository.Transactor
	clock    func() time.Time
	intn     func(n int) int
}

func (u *quizUsecase) Next(ctx context.Context, userID entity.UserID, req entity.QuizRequest) (*entity.QuizWord, error) {
	req, err := u.resolveRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var word *entity.Word
	switch req.Mode {
	case entity.QuizModeReview:
		word, err = u.draw(ctx, userID, repository.EligibilityQuery{Eligibility: repository.EligibleMastered})
	case entity.QuizModeSession:
		if !req.SessionIDs.Empty() {
			word, err = u.draw(ctx, userID, repository.EligibilityQuery{
				Eligibility: repository.EligibleUnmastered,
				Restrict:    req.SessionIDs.IDs(),
			})
			if err == nil || !errors.Is(err, entity.ErrNoEligibleWord) {
				break
			}
		}
		// Exhausted or empty session: graduate to the global pool.
		word, err = u.draw(ctx, userID, repository.EligibilityQuery{Eligibility: repository.EligibleUnmastered})
	default:
		word, err = u.draw(ctx, userID, repository.EligibilityQuery{Eligibility: repository.EligibleUnmastered})
	}
	if err != nil {
		return nil, err
	}

	return &entity.QuizWord{Word: *word, JumbledLetters: u.jumble(word.EnglishWord)}, nil
}

// resolveRequest falls back to the stored selection when the caller gave
// neither a mode nor ids.
func (u *quizUsecase) resolveRequest(ctx context.Context, userID entity.UserID, req entity.QuizRequest) (entity.QuizRequest, error) {
	if req.ModeExplicit || !req.SessionIDs.Empty() {
		if req.Mode == "" {
			req.Mode = entity.QuizModeNew
		}
		return req, nil
	}
	sel, err := u.sessions.Get(ctx, userID)
	if err != nil {
		return req, err
	}
	if sel.WordIDs.Empty() {
		return entity.QuizRequest{Mode: entity.QuizModeNew}, nil
	}
	return entity.QuizRequest{Mode: entity.QuizModeSession, SessionIDs: sel.WordIDs}, nil
}

// draw samples the eligible pool uniformly. Ids whose word disappeared between
// the pool query and the load are dropped and sampling retries.
func (u *quizUsecase) draw(ctx context.Context, userID entity.UserID, query repository.EligibilityQuery) (*entity.Word, error) {
	pool, err := u.progress.ListEligibleWordIDs(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	for len(pool) > 0 {
		i := u.intn(len(pool))
		word, err := u.words.GetByID(ctx, pool[i])
		if errors.Is(err, entity.ErrWordNotFound) {
			pool = append(pool[:i], pool[i+1:]...)
			continue
		}
		if err != nil {
			return nil, err
		}
		return word, nil
	}
	return nil, entity.ErrNoEligibleWord
}

// jumble shuffles the letters of word, keeping their case.
func (u *quizUsecase) jumble(word string) []string {
	letters := strings.Split(word, "")
	for i := len(letters) - 1; i > 0; i-- {
		j := u.intn(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
	return letters
}

// Submit grades attempt against the stored spelling. An empty attempt is a
// wrong answer.
func (u *quizUsecase) Submit(ctx context.Context, userID entity.UserID, wordID int64, attempt string) (*entity.SubmitResult, error) {
	if wordID <= 0 {
		return nil, entity.ErrMissingAttempt
	}

	var result *entity.SubmitResult
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		word, err := u.words.GetByID(ctx, wordID)
		if err != nil {
			return err
		}
		current, err := u.progress.Get(ctx, userID, wordID)
		if err != nil {
			return err
		}
		if current == nil {
			current = entity.NewProgress(userID, wordID)
		}

		correct := entity.SpellingMatches(word.EnglishWord, attempt)
		next := current.Answer(correct, u.clock())
		if err := u.progress.Upsert(ctx, &next); err != nil {
			return err
		}

		result = &entity.SubmitResult{Correct: correct, Progress: next}
		if !correct {
			result.CorrectSpelling = word.EnglishWord
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reset marks the word not mastered. Repeated calls leave the same state.
func (u *quizUsecase) Reset(ctx context.Context, userID entity.UserID, wordID int64) (*entity.Progress, error) {
	if wordID <= 0 {
		return nil, entity.ErrInvalidWordID
	}

	var reset entity.Progress
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := u.words.GetByID(ctx, wordID); err != nil {
			return err
		}
		reset = entity.NewProgress(userID, wordID).Reset(u.clock())
		return u.progress.Upsert(ctx, &reset)
	})
	if err != nil {
		return nil, err
	}
	return &reset, nil
}
