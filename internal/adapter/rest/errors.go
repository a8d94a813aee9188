package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/spellnet/internal/entity"
)

const internalErrorMessage = "internal server error"

type messageResponse struct {
	Message string `json:"message"`
}

// statusOf maps a domain error to its HTTP status.
func statusOf(err error) int {
	switch entity.KindOf(err) {
	case entity.KindValidation:
		return http.StatusBadRequest
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the mapped status and message. Storage failures are
// logged and answered with a generic message.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	message := publicMessage(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithField("request_id", requestID(c)).Error("request failed")
		message = internalErrorMessage
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, messageResponse{Message: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, messageResponse{Message: message})
}

// publicMessage strips the call-site prefixes from a domain error. Detail
// appended after the domain message is kept.
func publicMessage(err error) string {
	cause := entity.Cause(err)
	if cause == nil {
		return internalErrorMessage
	}
	if msg := err.Error(); strings.HasPrefix(msg, cause.Error()) {
		return msg
	}
	return cause.Error()
}
