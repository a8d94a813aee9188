package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/repository"
	"github.com/eslsoft/spellnet/internal/usecase/transfer"
)

type stubQuiz struct {
	lastReq    entity.QuizRequest
	nextWord   *entity.QuizWord
	nextErr    error
	submit     *entity.SubmitResult
	submitErr  error
	gotWordID  int64
	gotAttempt string
	resetErr   error
}

func (s *stubQuiz) Next(ctx context.Context, userID entity.UserID, req entity.QuizRequest) (*entity.QuizWord, error) {
	s.lastReq = req
	return s.nextWord, s.nextErr
}

func (s *stubQuiz) Submit(ctx context.Context, userID entity.UserID, wordID int64, attempt string) (*entity.SubmitResult, error) {
	s.gotWordID, s.gotAttempt = wordID, attempt
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	if wordID <= 0 {
		return nil, entity.ErrMissingAttempt
	}
	return s.submit, nil
}

func (s *stubQuiz) Reset(ctx context.Context, userID entity.UserID, wordID int64) (*entity.Progress, error) {
	if s.resetErr != nil {
		return nil, s.resetErr
	}
	return entity.NewProgress(userID, wordID), nil
}

type stubStats struct {
	gotIDs entity.WordIDSet
	stats  *entity.Stats
}

func (s *stubStats) Stats(ctx context.Context, userID entity.UserID, sessionIDs entity.WordIDSet) (*entity.Stats, error) {
	s.gotIDs = sessionIDs
	return s.stats, nil
}

type stubSessions struct {
	current entity.WordIDSet
}

func (s *stubSessions) Current(ctx context.Context, userID entity.UserID) (*entity.SessionSelection, error) {
	return &entity.SessionSelection{UserID: userID, WordIDs: s.current}, nil
}

func (s *stubSessions) Replace(ctx context.Context, userID entity.UserID, ids []int64) (*entity.SessionSelection, error) {
	s.current = entity.NewWordIDSet(ids)
	return &entity.SessionSelection{UserID: userID, WordIDs: s.current}, nil
}

type stubWords struct {
	items     []*entity.WordListItem
	total     int64
	lastQuery *repository.ListWordQuery
	err       error
}

func (s *stubWords) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *word
	out.ID = 42
	return &out, nil
}

func (s *stubWords) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	return word, s.err
}

func (s *stubWords) Get(ctx context.Context, id int64) (*entity.Word, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Word{ID: id, EnglishWord: "apple", ChineseDefinition: "苹果"}, nil
}

func (s *stubWords) List(ctx context.Context, userID entity.UserID, query *repository.ListWordQuery) ([]*entity.WordListItem, int64, error) {
	s.lastQuery = query
	return s.items, s.total, s.err
}

func (s *stubWords) Delete(ctx context.Context, id int64) error {
	return s.err
}

// bankRepo backs the transfer service.
type bankRepo struct {
	repository.WordRepository
	words    []*entity.Word
	inserted []string
}

func (r *bankRepo) ListAll(ctx context.Context) ([]*entity.Word, error) {
	return r.words, nil
}

func (r *bankRepo) InsertIgnore(ctx context.Context, word *entity.Word) (bool, error) {
	for _, w := range r.inserted {
		if strings.EqualFold(w, word.EnglishWord) {
			return false, nil
		}
	}
	r.inserted = append(r.inserted, word.EnglishWord)
	return true, nil
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

type fixture struct {
	engine   *gin.Engine
	quiz     *stubQuiz
	stats    *stubStats
	sessions *stubSessions
	words    *stubWords
	bank     *bankRepo
	pinger   *stubPinger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		Server: config.ServerConfig{MaxUploadBytes: 1 << 20},
		Quiz:   config.QuizConfig{UserID: 1},
	}

	f := &fixture{
		quiz:     &stubQuiz{},
		stats:    &stubStats{stats: &entity.Stats{}},
		sessions: &stubSessions{},
		words:    &stubWords{},
		bank:     &bankRepo{},
		pinger:   &stubPinger{},
	}
	svc := transfer.NewService(f.bank, logger)
	h := NewHandler(cfg, logger, f.pinger, f.quiz, f.stats, f.sessions, f.words, svc)

	f.engine = gin.New()
	f.engine.Use(RequestID(), Logger(logger))
	h.Register(f.engine)
	return f
}

func (f *fixture) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) doJSON(method, target, body string) *httptest.ResponseRecorder {
	return f.do(method, target, strings.NewReader(body), "application/json")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestNextWord_ModeResolution(t *testing.T) {
	cases := []struct {
		name         string
		target       string
		wantMode     entity.QuizMode
		wantExplicit bool
		wantIDs      []int64
	}{
		{name: "no params", target: "/api/quiz/next", wantMode: entity.QuizModeNew},
		{name: "review", target: "/api/quiz/next?mode=review", wantMode: entity.QuizModeReview, wantExplicit: true},
		{name: "session ids", target: "/api/quiz/next?mode=session&ids=5,x,12", wantMode: entity.QuizModeSession, wantExplicit: true, wantIDs: []int64{5, 12}},
		{name: "ids without mode", target: "/api/quiz/next?ids=3", wantMode: entity.QuizModeNew, wantExplicit: true, wantIDs: []int64{3}},
		{name: "unknown mode", target: "/api/quiz/next?mode=bogus", wantMode: entity.QuizModeNew, wantExplicit: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.quiz.nextWord = &entity.QuizWord{
				Word:           entity.Word{ID: 7, EnglishWord: "Cat", ChineseDefinition: "猫"},
				JumbledLetters: []string{"t", "C", "a"},
			}
			rec := f.do(http.MethodGet, tc.target, nil, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			got := f.quiz.lastReq
			if got.Mode != tc.wantMode || got.ModeExplicit != tc.wantExplicit {
				t.Fatalf("request = %+v, want mode %s explicit %v", got, tc.wantMode, tc.wantExplicit)
			}
			if ids := got.SessionIDs.IDs(); len(ids) != len(tc.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tc.wantIDs)
			}
			body := decode[map[string]any](t, rec)
			if body["word_id"] != float64(7) || body["english_word"] != "Cat" {
				t.Fatalf("unexpected body %v", body)
			}
			if _, ok := body["jumbled_letters"]; !ok {
				t.Fatalf("jumbled_letters missing from %v", body)
			}
		})
	}
}

func TestNextWord_NoEligibleWordIs404(t *testing.T) {
	f := newFixture(t)
	f.quiz.nextErr = entity.ErrNoEligibleWord

	rec := f.do(http.MethodGet, "/api/quiz/next?mode=review", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if msg := decode[messageResponse](t, rec).Message; msg == "" {
		t.Fatal("expected a message")
	}
}

func TestSubmitAnswer(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		result     *entity.SubmitResult
		err        error
		wantStatus int
		wantFields map[string]any
		absent     []string
	}{
		{name: "missing word_id", body: `{"user_attempt":"cat"}`, wantStatus: http.StatusBadRequest},
		{name: "missing attempt", body: `{"word_id":1}`, wantStatus: http.StatusBadRequest},
		{name: "null attempt", body: `{"word_id":1,"user_attempt":null}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "non-numeric word_id", body: `{"word_id":"abc","user_attempt":"cat"}`, wantStatus: http.StatusBadRequest},
		{
			name:       "string word_id",
			body:       `{"word_id":"1","user_attempt":"cat"}`,
			result:     &entity.SubmitResult{Correct: true, Progress: entity.Progress{CorrectStreak: 1}},
			wantStatus: http.StatusOK,
			wantFields: map[string]any{"correct": true, "correct_streak": float64(1)},
		},
		{
			name: "correct",
			body: `{"word_id":1,"user_attempt":"cat"}`,
			result: &entity.SubmitResult{
				Correct:  true,
				Progress: entity.Progress{CorrectStreak: 3, IsMastered: true},
			},
			wantStatus: http.StatusOK,
			wantFields: map[string]any{"correct": true, "correct_streak": float64(3), "is_mastered": true},
			absent:     []string{"correct_spelling"},
		},
		{
			name:       "incorrect",
			body:       `{"word_id":1,"user_attempt":"kat"}`,
			result:     &entity.SubmitResult{Correct: false, CorrectSpelling: "cat"},
			wantStatus: http.StatusOK,
			wantFields: map[string]any{"correct": false, "correct_spelling": "cat", "is_mastered": false},
		},
		{name: "unknown word", body: `{"word_id":99,"user_attempt":"x"}`, err: entity.ErrWordNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.quiz.submit = tc.result
			f.quiz.submitErr = tc.err

			rec := f.doJSON(http.MethodPost, "/api/quiz/submit", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}
			body := decode[map[string]any](t, rec)
			for k, want := range tc.wantFields {
				if body[k] != want {
					t.Fatalf("%s = %v, want %v", k, body[k], want)
				}
			}
			for _, k := range tc.absent {
				if _, ok := body[k]; ok {
					t.Fatalf("%s should be omitted, body %v", k, body)
				}
			}
		})
	}
}

func TestSubmitAnswer_BlankAttemptIsGraded(t *testing.T) {
	for _, attempt := range []string{"", "  "} {
		f := newFixture(t)
		f.quiz.submit = &entity.SubmitResult{Correct: false, CorrectSpelling: "cat"}

		body, _ := json.Marshal(map[string]any{"word_id": 1, "user_attempt": attempt})
		rec := f.doJSON(http.MethodPost, "/api/quiz/submit", string(body))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %q: status = %d, want 200", attempt, rec.Code)
		}
		if f.quiz.gotAttempt != attempt || f.quiz.gotWordID != 1 {
			t.Fatalf("forwarded %d/%q", f.quiz.gotWordID, f.quiz.gotAttempt)
		}
		if got := decode[map[string]any](t, rec); got["correct"] != false || got["correct_spelling"] != "cat" {
			t.Fatalf("attempt %q: unexpected body %v", attempt, got)
		}
	}
}

func TestProgressStats(t *testing.T) {
	f := newFixture(t)
	f.stats.stats = &entity.Stats{Total: 10, Mastered: 4}

	rec := f.do(http.MethodGet, "/api/progress/stats", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[map[string]any](t, rec)
	if body["total"] != float64(10) || body["mastered"] != float64(4) {
		t.Fatalf("unexpected body %v", body)
	}
	for _, k := range []string{"session_total", "session_mastered"} {
		v, ok := body[k]
		if !ok || v != nil {
			t.Fatalf("%s = %v (present %v), want null", k, v, ok)
		}
	}

	sessionTotal, sessionMastered := int64(3), int64(1)
	f.stats.stats = &entity.Stats{Total: 10, Mastered: 4, SessionTotal: &sessionTotal, SessionMastered: &sessionMastered}
	rec = f.do(http.MethodGet, "/api/progress/stats?ids=1,2,3", nil, "")
	body = decode[map[string]any](t, rec)
	if body["session_total"] != float64(3) || body["session_mastered"] != float64(1) {
		t.Fatalf("unexpected session body %v", body)
	}
	if f.stats.gotIDs.Len() != 3 {
		t.Fatalf("ids forwarded = %v", f.stats.gotIDs.IDs())
	}
}

func TestResetProgress(t *testing.T) {
	cases := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "ok", target: "/api/progress/reset/5", wantStatus: http.StatusOK},
		{name: "not a number", target: "/api/progress/reset/abc", wantStatus: http.StatusBadRequest},
		{name: "zero", target: "/api/progress/reset/0", wantStatus: http.StatusBadRequest},
		{name: "unknown word", target: "/api/progress/reset/9", err: entity.ErrWordNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.quiz.resetErr = tc.err
			rec := f.do(http.MethodPut, tc.target, nil, "")
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestSessionSelection(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/session/current", nil, "")
	if got := decode[selectionResponse](t, rec); rec.Code != http.StatusOK || len(got.SelectedIDs) != 0 {
		t.Fatalf("initial selection = %d %v", rec.Code, got.SelectedIDs)
	}
	if !strings.Contains(rec.Body.String(), `"selected_ids":[]`) {
		t.Fatalf("empty selection should render as [], got %s", rec.Body)
	}

	for _, body := range []string{`{"selected_ids":"5,12"}`, `{}`, `not json`} {
		if rec := f.doJSON(http.MethodPut, "/api/session/current", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("PUT %s status = %d, want 400", body, rec.Code)
		}
	}

	rec = f.doJSON(http.MethodPut, "/api/session/current", `{"selected_ids":[5,12,5]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d", rec.Code)
	}
	rec = f.do(http.MethodGet, "/api/session/current", nil, "")
	got := decode[selectionResponse](t, rec)
	if len(got.SelectedIDs) != 2 || got.SelectedIDs[0] != 5 || got.SelectedIDs[1] != 12 {
		t.Fatalf("selection = %v, want [5 12]", got.SelectedIDs)
	}
}

func TestListWords(t *testing.T) {
	f := newFixture(t)
	f.words.items = []*entity.WordListItem{{Word: entity.Word{ID: 1, EnglishWord: "apple"}, IsMastered: true, IsSelected: true}}
	f.words.total = 12

	rec := f.do(http.MethodGet, "/api/words?tag=w1&page=2&page_size=5&filter=week_tag%20%3D%3D%20%27w1%27&order_by=english_word", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get(totalCountHeader); got != "12" {
		t.Fatalf("total header = %q", got)
	}
	q := f.words.lastQuery
	if q.Tag != "w1" || q.PageNo != 2 || q.PageSize != 5 || q.Filter != "week_tag == 'w1'" || q.OrderBy != "english_word" {
		t.Fatalf("query = %+v", q)
	}
	items := decode[[]map[string]any](t, rec)
	if len(items) != 1 || items[0]["is_mastered"] != true || items[0]["is_selected"] != true {
		t.Fatalf("items = %v", items)
	}
}

func TestListWords_EmptyIsArray(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/words", nil, "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %s, want []", rec.Body)
	}
}

func TestWordErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "validation", err: entity.ErrInvalidWordText, wantStatus: http.StatusBadRequest, wantMsg: entity.ErrInvalidWordText.Error()},
		{name: "bad filter", err: errors.Join(entity.ErrInvalidFilter, errors.New("unknown field")), wantStatus: http.StatusBadRequest},
		{name: "not found", err: entity.ErrWordNotFound, wantStatus: http.StatusNotFound, wantMsg: entity.ErrWordNotFound.Error()},
		{name: "wrapped not found", err: fmt.Errorf("get word: %w", entity.ErrWordNotFound), wantStatus: http.StatusNotFound, wantMsg: entity.ErrWordNotFound.Error()},
		{name: "filter detail", err: fmt.Errorf("%w: order_by: unknown column", entity.ErrInvalidFilter), wantStatus: http.StatusBadRequest, wantMsg: "invalid filter: order_by: unknown column"},
		{name: "conflict", err: entity.ErrDuplicateWord, wantStatus: http.StatusConflict, wantMsg: entity.ErrDuplicateWord.Error()},
		{name: "storage", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: internalErrorMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.words.err = tc.err
			rec := f.doJSON(http.MethodPost, "/api/words", `{"english_word":"apple","chinese_definition":"苹果"}`)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			msg := decode[messageResponse](t, rec).Message
			if tc.wantMsg != "" && msg != tc.wantMsg {
				t.Fatalf("message = %q, want %q", msg, tc.wantMsg)
			}
			if strings.Contains(msg, "pq:") {
				t.Fatalf("storage detail leaked: %q", msg)
			}
		})
	}
}

func TestWordCRUDRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.doJSON(http.MethodPost, "/api/words", `{"english_word":"apple","chinese_definition":"苹果","week_tag":"w1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	if created := decode[entity.Word](t, rec); created.ID != 42 || created.WeekTag != "w1" {
		t.Fatalf("created = %+v", created)
	}

	if rec := f.do(http.MethodGet, "/api/words/3", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if rec := f.doJSON(http.MethodPut, "/api/words/3", `{"english_word":"pear","chinese_definition":"梨"}`); rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	if rec := f.do(http.MethodDelete, "/api/words/3", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := f.do(http.MethodDelete, "/api/words/abc", nil, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("delete bad id status = %d", rec.Code)
	}
}

func TestExportWords(t *testing.T) {
	f := newFixture(t)
	f.bank.words = []*entity.Word{
		{ID: 1, EnglishWord: "apple", ChineseDefinition: "苹果", WeekTag: "w1"},
		{ID: 2, EnglishWord: "pear", ChineseDefinition: "梨, 一种水果"},
	}

	rec := f.do(http.MethodGet, "/api/words/export", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, exportFilename) {
		t.Fatalf("content disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 || lines[0] != strings.Join(transfer.Columns, ",") {
		t.Fatalf("export = %q", rec.Body.String())
	}
	if !strings.Contains(lines[2], `"梨, 一种水果"`) {
		t.Fatalf("comma field should be quoted: %q", lines[2])
	}
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestImportWords(t *testing.T) {
	f := newFixture(t)
	csv := "english_word,chinese_definition\napple,苹果\n,缺词\nApple,重复\npear,梨\n"
	body, ct := multipartBody(t, uploadField, "words.csv", csv)

	rec := f.do(http.MethodPost, "/api/words/import", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	got := decode[map[string]any](t, rec)
	if got["processed"] != float64(4) || got["imported"] != float64(2) || got["skipped"] != float64(2) {
		t.Fatalf("import result = %v", got)
	}
}

func TestImportWords_Rejections(t *testing.T) {
	cases := []struct {
		name       string
		field      string
		filename   string
		content    string
		wantStatus int
	}{
		{name: "missing file field", field: "other", filename: "words.csv", content: "a,b\n", wantStatus: http.StatusBadRequest},
		{name: "unsupported extension", field: uploadField, filename: "words.pdf", content: "x", wantStatus: http.StatusBadRequest},
		{name: "header only", field: uploadField, filename: "words.csv", content: "english_word,chinese_definition\n", wantStatus: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			body, ct := multipartBody(t, tc.field, tc.filename, tc.content)
			rec := f.do(http.MethodPost, "/api/words/import", body, ct)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(http.MethodGet, "/healthz", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	f.pinger.err = errors.New("down")
	if rec := f.do(http.MethodGet, "/healthz", nil, ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}

	rec = f.do(http.MethodGet, "/healthz", nil, "")
	if got := rec.Header().Get(requestIDHeader); len(got) != 36 {
		t.Fatalf("generated request id = %q", got)
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int]logrus.Level{
		http.StatusOK:                  logrus.InfoLevel,
		http.StatusCreated:             logrus.InfoLevel,
		http.StatusBadRequest:          logrus.WarnLevel,
		http.StatusNotFound:            logrus.WarnLevel,
		http.StatusConflict:            logrus.WarnLevel,
		http.StatusInternalServerError: logrus.ErrorLevel,
		http.StatusServiceUnavailable:  logrus.ErrorLevel,
	}
	for status, want := range cases {
		if got := levelFor(status); got != want {
			t.Errorf("levelFor(%d) = %v, want %v", status, got, want)
		}
	}
}
