package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	UserID uuid.UUID `json:"uid,omitempty"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a user token. The returned jti identifies the
// token for revocation.
func GenerateAccessToken(userID uuid.UUID, email, issuer, secret string, ttl time.Duration) (string, *Claims, error) {
	claims := newClaims(RoleUser, userID.String(), issuer, ttl)
	claims.UserID = userID
	claims.Email = email
	return sign(claims, secret)
}

// GenerateAdminToken signs a token for the configured administrator. It is
// not tied to any stored user.
func GenerateAdminToken(email, issuer, secret string, ttl time.Duration) (string, *Claims, error) {
	claims := newClaims(RoleAdmin, "admin", issuer, ttl)
	claims.Email = email
	return sign(claims, secret)
}

func newClaims(role, subject, issuer string, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func sign(claims *Claims, secret string) (string, *Claims, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
