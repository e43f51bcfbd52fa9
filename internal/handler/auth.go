package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real_estate/internal/config"
	"real_estate/internal/middleware"
	"real_estate/internal/service"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
	log         logger.Logger
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		log:         log,
	}
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleAuthRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.BadRequest("All credentials are required"))
		return
	}

	res, err := h.authService.SignUp(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.log.Warn("Signup failed", "error", err)
		fail(c, err)
		return
	}

	h.log.Info("User signed up", "user_id", res.User.ID)
	h.respondWithToken(c, http.StatusCreated, res)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	h.signIn(c, false)
}

func (h *AuthHandler) SignInBroker(c *gin.Context) {
	h.signIn(c, true)
}

func (h *AuthHandler) signIn(c *gin.Context, broker bool) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.BadRequest("All credentials are required"))
		return
	}

	res, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password, broker)
	if err != nil {
		h.log.Warn("Signin failed", "error", err, "broker", broker)
		fail(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, res)
}

func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.BadRequest("Email is required"))
		return
	}

	res, err := h.authService.GoogleAuth(c.Request.Context(), req.Username, req.Email, req.Avatar)
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	h.respondWithToken(c, status, res)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.BadRequest("Invalid Credentials"))
		return
	}

	token, err := h.authService.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("Admin login failed")
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "aToken": token})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.authService.SignOut(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		fail(c, err)
		return
	}

	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cfg.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signed out successfully"})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, res *service.AuthResult) {
	maxAge := int(h.cfg.JWT.AccessTTL.Seconds())
	c.SetCookie(middleware.AccessTokenCookie, res.Token, maxAge, "/", "", h.cfg.IsProduction(), true)

	c.JSON(status, gin.H{
		"success": true,
		"message": res.Message,
		"user":    res.User,
		"token":   res.Token,
	})
}
