package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

// ErrorHandler renders the last error pushed with c.Error as
// {success:false, message}. 5xx details stay in the log.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperrors.HTTPStatusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		}

		c.JSON(status, gin.H{
			"success": false,
			"message": apperrors.Message(err),
		})
	}
}
