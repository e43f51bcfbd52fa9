package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"real_estate/internal/service"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type RateLimitMiddleware struct {
	rateLimitService service.RateLimitService
	log              logger.Logger
}

func NewRateLimitMiddleware(rateLimitService service.RateLimitService, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		log:              log,
	}
}

// Limit counts requests per client IP in a fixed window.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := m.rateLimitService.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			m.log.Error("Rate limit check failed", "error", err)
			abortWithError(c, apperrors.Internal("Internal server error"))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(res.ResetIn.Seconds())))

		if !res.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
