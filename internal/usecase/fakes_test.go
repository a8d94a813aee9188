package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/repository"
)

type fakeWordRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.Word
	// vanished ids stay in eligibility pools but fail to load, as when a word
	// is deleted between the pool query and the read.
	vanished map[int64]bool
}

func newFakeWordRepo(words ...string) *fakeWordRepo {
	r := &fakeWordRepo{items: map[int64]*entity.Word{}, vanished: map[int64]bool{}}
	for _, w := range words {
		r.seq++
		r.items[r.seq] = &entity.Word{ID: r.seq, EnglishWord: w, ChineseDefinition: "def " + w}
	}
	return r
}

func (r *fakeWordRepo) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.EnglishWord, word.EnglishWord) {
			return nil, entity.ErrDuplicateWord
		}
	}
	r.seq++
	copy := *word
	copy.ID = r.seq
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeWordRepo) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[word.ID]
	if !ok {
		return nil, entity.ErrWordNotFound
	}
	copy := *word
	copy.CreatedAt = existing.CreatedAt
	r.items[word.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeWordRepo) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || r.vanished[id] {
		return nil, entity.ErrWordNotFound
	}
	out := *item
	return &out, nil
}

func (r *fakeWordRepo) List(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, int64, error) {
	if query.Filter != "" {
		return nil, 0, entity.ErrInvalidFilter
	}
	all, _ := r.ListAll(ctx)
	var out []*entity.Word
	for _, w := range all {
		if query.Tag == "" || w.WeekTag == query.Tag {
			out = append(out, w)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeWordRepo) ListAll(ctx context.Context) ([]*entity.Word, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Word, 0, len(r.items))
	for _, w := range r.items {
		copy := *w
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeWordRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrWordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeWordRepo) InsertIgnore(ctx context.Context, word *entity.Word) (bool, error) {
	if _, err := r.Create(ctx, word); err != nil {
		if errors.Is(err, entity.ErrDuplicateWord) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *fakeWordRepo) ids() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type progressKey struct {
	user entity.UserID
	word int64
}

type fakeProgressRepo struct {
	mu      sync.RWMutex
	words   *fakeWordRepo
	rows    map[progressKey]entity.Progress
	upserts int
}

func newFakeProgressRepo(words *fakeWordRepo) *fakeProgressRepo {
	return &fakeProgressRepo{words: words, rows: map[progressKey]entity.Progress{}}
}

func (r *fakeProgressRepo) Get(ctx context.Context, userID entity.UserID, wordID int64) (*entity.Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[progressKey{userID, wordID}]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeProgressRepo) Upsert(ctx context.Context, progress *entity.Progress) error {
	if _, ok := r.words.items[progress.WordID]; !ok {
		return entity.ErrWordNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row := *progress
	row.IsMastered = entity.MasteryFrom(row.CorrectStreak)
	r.rows[progressKey{progress.UserID, progress.WordID}] = row
	r.upserts++
	return nil
}

// set writes a row directly, bypassing the word check.
func (r *fakeProgressRepo) set(userID entity.UserID, wordID int64, streak int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[progressKey{userID, wordID}] = entity.Progress{
		UserID:        userID,
		WordID:        wordID,
		CorrectStreak: streak,
		IsMastered:    entity.MasteryFrom(streak),
	}
}

func (r *fakeProgressRepo) ListEligibleWordIDs(ctx context.Context, userID entity.UserID, query repository.EligibilityQuery) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := []int64{}
	for _, id := range r.words.ids() {
		if query.Restrict != nil && !containsID(query.Restrict, id) {
			continue
		}
		row, ok := r.rows[progressKey{userID, id}]
		mastered := ok && row.IsMastered
		if (query.Eligibility == repository.EligibleMastered) == mastered {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeProgressRepo) CountMastered(ctx context.Context, userID entity.UserID, restrict []int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for key, row := range r.rows {
		if key.user != userID || !row.IsMastered {
			continue
		}
		if restrict != nil && !containsID(restrict, key.word) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeProgressRepo) MasteredWordIDs(ctx context.Context, userID entity.UserID) ([]int64, error) {
	return r.ListEligibleWordIDs(ctx, userID, repository.EligibilityQuery{Eligibility: repository.EligibleMastered})
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeSessionRepo struct {
	mu   sync.Mutex
	sets map[entity.UserID]entity.WordIDSet
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sets: map[entity.UserID]entity.WordIDSet{}}
}

func (r *fakeSessionRepo) Get(ctx context.Context, userID entity.UserID) (*entity.SessionSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &entity.SessionSelection{UserID: userID, WordIDs: r.sets[userID]}, nil
}

func (r *fakeSessionRepo) Replace(ctx context.Context, selection *entity.SessionSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[selection.UserID] = selection.WordIDs
	return nil
}

// fakeTx runs fn directly and records how many transactions were opened.
type fakeTx struct {
	calls int
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
