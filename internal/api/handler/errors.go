package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/secondchance/internal/api/dto"
	"github.com/martijn/secondchance/internal/core/service"
)

// statusFor maps a service error kind onto the HTTP status the API has
// always returned for it. Conflict and auth failures are 400s.
func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation, service.KindConflict, service.KindAuth:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Internal errors are logged and replaced with a
// generic message.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = service.NewInternalError("unexpected error", err)
	}

	code := statusFor(svcErr.Kind)
	message := svcErr.Message
	if code == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), svcErr.Message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", svcErr.Err,
		)
		message = http.StatusText(code)
	}

	c.JSON(code, dto.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
