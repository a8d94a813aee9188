package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the gin engine with recovery, request ids and request
// logging in front of the API routes.
func NewRouter(h *Handler, logger *logrus.Logger) *gin.Engine {
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), Logger(logger), gin.Recovery())
	h.Register(r)
	return r
}
