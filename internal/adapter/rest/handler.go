package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/usecase"
	"github.com/eslsoft/spellnet/internal/usecase/transfer"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the trainer's JSON API. Every request acts on behalf of the
// single configured learner.
type Handler struct {
	quiz     usecase.QuizUsecase
	stats    usecase.StatsUsecase
	sessions usecase.SessionUsecase
	words    usecase.WordUsecase
	transfer *transfer.Service
	pinger   Pinger
	logger   logrus.FieldLogger

	userID    entity.UserID
	maxUpload int64
}

func NewHandler(
	cfg *config.Config,
	logger *logrus.Logger,
	pinger Pinger,
	quiz usecase.QuizUsecase,
	stats usecase.StatsUsecase,
	sessions usecase.SessionUsecase,
	words usecase.WordUsecase,
	transferSvc *transfer.Service,
) *Handler {
	userID := entity.UserID(cfg.Quiz.UserID)
	if !userID.Valid() {
		userID = entity.DefaultUserID
	}
	return &Handler{
		quiz:      quiz,
		stats:     stats,
		sessions:  sessions,
		words:     words,
		transfer:  transferSvc,
		pinger:    pinger,
		logger:    logger,
		userID:    userID,
		maxUpload: cfg.Server.MaxUploadBytes,
	}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.health)

	api := r.Group("/api")
	{
		quiz := api.Group("/quiz")
		quiz.GET("/next", h.nextWord)
		quiz.POST("/submit", h.submitAnswer)

		progress := api.Group("/progress")
		progress.GET("/stats", h.progressStats)
		progress.PUT("/reset/:word_id", h.resetProgress)

		session := api.Group("/session")
		session.GET("/current", h.currentSession)
		session.PUT("/current", h.replaceSession)

		words := api.Group("/words")
		words.GET("", h.listWords)
		words.POST("", h.createWord)
		words.GET("/export", h.exportWords)
		words.POST("/import", h.importWords)
		words.GET("/:id", h.getWord)
		words.PUT("/:id", h.updateWord)
		words.DELETE("/:id", h.deleteWord)
	}
}

func (h *Handler) health(c *gin.Context) {
	if err := h.pinger.PingContext(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("storage ping failed")
		c.JSON(http.StatusServiceUnavailable, messageResponse{Message: "storage unavailable"})
		return
	}
	c.String(http.StatusOK, "ok")
}
