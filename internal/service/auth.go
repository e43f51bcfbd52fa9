package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"real_estate/internal/config"
	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/jwt"
	"real_estate/pkg/logger"
)

const minPasswordLength = 8

type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string, broker bool) (*AuthResult, error)
	// GoogleAuth signs in the user with email, creating it on first use.
	GoogleAuth(ctx context.Context, username, email, avatar string) (*AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
	ValidateUserToken(ctx context.Context, token string) (*domain.User, *jwt.Claims, error)
	ValidateAdminToken(ctx context.Context, token string) (*jwt.Claims, error)
	SignOut(ctx context.Context, claims *jwt.Claims) error
}

type AuthResult struct {
	User    *domain.User
	Token   string
	Message string
	Created bool
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtCfg    config.JWTConfig
	adminCfg  config.AdminConfig
	validate  *validator.Validate
	log       logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtCfg config.JWTConfig, adminCfg config.AdminConfig, log logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtCfg:    jwtCfg,
		adminCfg:  adminCfg,
		validate:  validator.New(),
		log:       log,
	}
}

func (s *authService) validEmail(email string) bool {
	return s.validate.Var(email, "required,email") == nil
}

func (s *authService) SignUp(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, apperrors.BadRequest("All credentials are required")
	}
	if !s.validEmail(email) {
		return nil, apperrors.BadRequest("Invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.BadRequest("Please enter a password with a minimum length of 8")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Avatar:       domain.DefaultAvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, duplicateUserError(err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed up", "user_id", user.ID)
	return &AuthResult{User: user, Token: token, Message: "User created successfully", Created: true}, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string, broker bool) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, apperrors.BadRequest("All fields are required")
	}
	if !s.validEmail(email) {
		return nil, apperrors.BadRequest("Invalid email format")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, err
	}

	if broker && !user.IsBroker {
		return nil, apperrors.Unauthorized("Not a Broker Account!")
	}
	if !broker && user.IsBroker {
		return nil, apperrors.Unauthorized("Brokers must log in via the broker login!")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Incorrect password")
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token, Message: welcomeMessage(user)}, nil
}

func (s *authService) GoogleAuth(ctx context.Context, username, email, avatar string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.BadRequest("Email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		token, err := s.issue(user)
		if err != nil {
			return nil, err
		}
		return &AuthResult{User: user, Token: token, Message: welcomeMessage(user)}, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	if !s.validEmail(email) {
		return nil, apperrors.BadRequest("Invalid email format")
	}

	// The account gets a random password; it can only sign in through this flow.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Failed to hash password", "error", err)
		return nil, err
	}

	base := strings.TrimSpace(username)
	if base == "" {
		base = "user"
	}
	if avatar == "" {
		avatar = domain.DefaultAvatarURL
	}

	now := time.Now()
	user = &domain.User{
		ID:           uuid.New(),
		Username:     base,
		Email:        email,
		PasswordHash: string(passwordHash),
		Avatar:       avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	const attempts = 5
	for i := 0; ; i++ {
		err = s.userRepo.Create(ctx, user)
		var dup *repository.DuplicateError
		if err == nil || !errors.As(err, &dup) || dup.Field != "username" || i == attempts-1 {
			break
		}
		user.Username = base + strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	}
	if err != nil {
		return nil, duplicateUserError(err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed up with Google", "user_id", user.ID)
	return &AuthResult{User: user, Token: token, Message: "Signed-up successfully", Created: true}, nil
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminCfg.Email))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminCfg.Password))
	if emailOK&passwordOK != 1 || s.adminCfg.Email == "" {
		return "", apperrors.BadRequest("Invalid Credentials")
	}

	token, _, err := jwt.GenerateAdminToken(email, s.jwtCfg.Issuer, s.jwtCfg.AccessSecret, s.jwtCfg.AccessTTL)
	if err != nil {
		s.log.Error("Failed to generate admin token", "error", err)
		return "", err
	}
	return token, nil
}

func (s *authService) ValidateUserToken(ctx context.Context, token string) (*domain.User, *jwt.Claims, error) {
	claims, err := s.parse(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if claims.Role != jwt.RoleUser {
		return nil, nil, apperrors.Unauthorized("Unauthorized")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.Unauthorized("User no longer exists")
		}
		return nil, nil, err
	}
	return user, claims, nil
}

func (s *authService) ValidateAdminToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.parse(ctx, token)
	if err != nil {
		return nil, err
	}
	if claims.Role != jwt.RoleAdmin {
		return nil, apperrors.Forbidden("Admin access required")
	}
	return claims, nil
}

func (s *authService) SignOut(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.tokenRepo.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

func (s *authService) parse(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateToken(token, s.jwtCfg.AccessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, apperrors.Unauthorized("Token expired")
		}
		return nil, apperrors.Unauthorized("Invalid token")
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.Unauthorized("Token revoked")
	}
	return claims, nil
}

func (s *authService) issue(user *domain.User) (string, error) {
	token, _, err := jwt.GenerateAccessToken(user.ID, user.Email, s.jwtCfg.Issuer, s.jwtCfg.AccessSecret, s.jwtCfg.AccessTTL)
	if err != nil {
		s.log.Error("Failed to generate access token", "error", err)
		return "", err
	}
	return token, nil
}

func welcomeMessage(user *domain.User) string {
	first := "User"
	if fields := strings.Fields(user.Username); len(fields) > 0 {
		first = fields[0]
	}
	return "Welcome Back " + first + "!"
}

func duplicateUserError(err error) error {
	var dup *repository.DuplicateError
	if !errors.As(err, &dup) {
		return err
	}
	switch dup.Field {
	case "username":
		return apperrors.Conflict("Username already taken")
	case "email":
		return apperrors.Conflict("Email already registered")
	case "phone":
		return apperrors.Conflict("Phone number already in use")
	default:
		return apperrors.Conflict("User already exists")
	}
}
