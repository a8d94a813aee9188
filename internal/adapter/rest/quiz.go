package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/spellnet/internal/entity"
)

type quizWordResponse struct {
	WordID            int64    `json:"word_id"`
	EnglishWord       string   `json:"english_word"`
	ChineseDefinition string   `json:"chinese_definition"`
	JumbledLetters    []string `json:"jumbled_letters"`
}

type submitRequest struct {
	WordID      *lenientID `json:"word_id"`
	UserAttempt *string    `json:"user_attempt"`
}

// lenientID accepts an id sent either as a JSON number or as a numeric string.
type lenientID int64

func (id *lenientID) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*id = lenientID(v)
	return nil
}

type submitResponse struct {
	Correct         bool   `json:"correct"`
	CorrectSpelling string `json:"correct_spelling,omitempty"`
	CorrectStreak   int    `json:"correct_streak"`
	IsMastered      bool   `json:"is_mastered"`
}

type statsResponse struct {
	Total           int64  `json:"total"`
	Mastered        int64  `json:"mastered"`
	SessionTotal    *int64 `json:"session_total"`
	SessionMastered *int64 `json:"session_mastered"`
}

type selectionRequest struct {
	SelectedIDs *[]int64 `json:"selected_ids"`
}

type selectionResponse struct {
	Message     string  `json:"message,omitempty"`
	SelectedIDs []int64 `json:"selected_ids"`
}

func (h *Handler) nextWord(c *gin.Context) {
	mode, explicit := entity.ParseQuizMode(c.Query("mode"))
	rawIDs, hasIDs := c.GetQuery("ids")
	req := entity.QuizRequest{
		Mode:         mode,
		SessionIDs:   entity.ParseIDList(rawIDs),
		ModeExplicit: explicit || hasIDs,
	}

	word, err := h.quiz.Next(c.Request.Context(), h.userID, req)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizWordResponse{
		WordID:            word.ID,
		EnglishWord:       word.EnglishWord,
		ChineseDefinition: word.ChineseDefinition,
		JumbledLetters:    word.JumbledLetters,
	})
}

func (h *Handler) submitAnswer(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, entity.ErrMissingAttempt)
		return
	}
	if req.WordID == nil || req.UserAttempt == nil {
		h.abortWithError(c, entity.ErrMissingAttempt)
		return
	}

	result, err := h.quiz.Submit(c.Request.Context(), h.userID, int64(*req.WordID), *req.UserAttempt)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	resp := submitResponse{
		Correct:       result.Correct,
		CorrectStreak: result.Progress.CorrectStreak,
		IsMastered:    result.Progress.IsMastered,
	}
	if !result.Correct {
		resp.CorrectSpelling = result.CorrectSpelling
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) progressStats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context(), h.userID, entity.ParseIDList(c.Query("ids")))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, statsResponse{
		Total:           stats.Total,
		Mastered:        stats.Mastered,
		SessionTotal:    stats.SessionTotal,
		SessionMastered: stats.SessionMastered,
	})
}

func (h *Handler) resetProgress(c *gin.Context) {
	wordID, err := pathID(c, "word_id")
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if _, err := h.quiz.Reset(c.Request.Context(), h.userID, wordID); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "单词掌握状态已重置"})
}

func (h *Handler) currentSession(c *gin.Context) {
	selection, err := h.sessions.Current(c.Request.Context(), h.userID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, selectionResponse{SelectedIDs: selection.WordIDs.IDs()})
}

func (h *Handler) replaceSession(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SelectedIDs == nil {
		h.abortWithError(c, entity.ErrInvalidSelection)
		return
	}

	selection, err := h.sessions.Replace(c.Request.Context(), h.userID, *req.SelectedIDs)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, selectionResponse{
		Message:     "选中列表更新成功",
		SelectedIDs: selection.WordIDs.IDs(),
	})
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, entity.ErrInvalidWordID
	}
	return id, nil
}
