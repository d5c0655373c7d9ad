package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-portal-api/internal/delivery/http/response"
	"recruit-portal-api/pkg/apperror"
	"recruit-portal-api/pkg/logger"
)

// ErrorHandler is the single point translating a failure into an HTTP
// status and a user-safe message. 5xx failures log at error severity with
// the wrapped cause; declared 4xx failures are expected business friction
// and log at warning severity with kind and message only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"status", appErr.Code,
					"path", c.FullPath(),
					"error", appErr.Err,
				)
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}
			logger.Log.Warn("request rejected",
				"status", appErr.Code,
				"path", c.FullPath(),
				"message", appErr.Message,
			)
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients; untyped errors
		// are coerced to a generic 500.
		logger.Log.Error("unexpected error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
