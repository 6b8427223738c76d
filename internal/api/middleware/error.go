package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/secondchance/internal/api/dto"
)

// ErrorHandlerMiddleware turns panics and unhandled handler errors into the
// generic 500 body. Detail goes to the log only.
func ErrorHandlerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(c.Request.Context(), "panic while handling request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", rec,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalError())
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", c.Errors.Last().Err,
			)
			c.JSON(http.StatusInternalServerError, internalError())
		}
	}
}

func internalError() dto.ErrorResponse {
	return dto.ErrorResponse{
		Error:   "Internal Server Error",
		Message: "Internal Server Error",
		Code:    http.StatusInternalServerError,
	}
}
