package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"real_estate/pkg/logger"
)

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		status := c.Writer.Status()
		kv := []interface{}{
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Request", kv...)
		case status >= http.StatusBadRequest:
			log.Warn("Request", kv...)
		default:
			log.Info("Request", kv...)
		}
	}
}
