package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, issued, err := GenerateAccessToken(userID, "a@b.io", "estate", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)
}

func TestAdminToken(t *testing.T) {
	token, _, err := GenerateAdminToken("admin@estate.io", "estate", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, uuid.Nil, claims.UserID)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	token, _, err := GenerateAccessToken(uuid.New(), "", "estate", secret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("not-a-token", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := GenerateAccessToken(uuid.New(), "", "estate", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, secret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
