package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"real_estate/internal/domain"
	"real_estate/internal/service"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/jwt"
	"real_estate/pkg/logger"
)

const (
	contextUserKey   = "user"
	contextClaimsKey = "claims"
)

// AccessTokenCookie is set by the sign-in endpoints for browser clients.
const AccessTokenCookie = "access_token"

type AuthMiddleware struct {
	authService service.AuthService
	log         logger.Logger
}

func NewAuthMiddleware(authService service.AuthService, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         log,
	}
}

// RequireAuth admits requests carrying a valid user token in the
// Authorization header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return m.requireUser(false)
}

// RequireSocketAuth also accepts ?token= since browsers cannot set headers
// on a websocket handshake.
func (m *AuthMiddleware) RequireSocketAuth() gin.HandlerFunc {
	return m.requireUser(true)
}

func (m *AuthMiddleware) requireUser(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c, allowQuery)
		if err != nil {
			abortWithError(c, err)
			return
		}

		user, claims, err := m.authService.ValidateUserToken(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin admits requests carrying a token with the admin role.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c, false)
		if err != nil {
			abortWithError(c, err)
			return
		}

		claims, err := m.authService.ValidateAdminToken(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
			return token, nil
		}
		if allowQuery {
			if token := c.Query("token"); token != "" {
				return token, nil
			}
		}
		return "", apperrors.Unauthorized("Authorization header required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.Unauthorized("Invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func abortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// CurrentUser is the user set by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

func CurrentClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(contextClaimsKey); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}
