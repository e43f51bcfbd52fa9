package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"real_estate/internal/domain"
	apperrors "real_estate/pkg/errors"
)

func TestSignUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Auth.SignUp(ctx, "Asha Rao", "Asha@Example.com", "password1")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "asha@example.com", res.User.Email)

	body, err := json.Marshal(res.User)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")

	_, err = env.svc.Auth.SignUp(ctx, "Asha Rao", "other@example.com", "password1")
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatusFromError(err))

	_, err = env.svc.Auth.SignUp(ctx, "someone", "asha@example.com", "password1")
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatusFromError(err))
}

func TestSignUpValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name, username, email, password, message string
	}{
		{"missing field", "", "a@example.com", "password1", "All credentials are required"},
		{"bad email", "a", "not-an-email", "password1", "Invalid email format"},
		{"short password", "a", "a@example.com", "short", "Please enter a password with a minimum length of 8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.Auth.SignUp(ctx, tc.username, tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatusFromError(err))
			assert.Equal(t, tc.message, apperrors.Message(err))
		})
	}
}

func TestSignInRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Auth.SignUp(ctx, "Ravi Kumar", "ravi@example.com", "password1")
	require.NoError(t, err)

	res, err := env.svc.Auth.SignIn(ctx, "ravi@example.com", "password1", false)
	require.NoError(t, err)
	assert.Equal(t, "Welcome Back Ravi!", res.Message)

	_, err = env.svc.Auth.SignIn(ctx, "ravi@example.com", "password1", true)
	assert.Equal(t, "Not a Broker Account!", apperrors.Message(err))
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatusFromError(err))

	_, err = env.svc.Auth.SignIn(ctx, "ravi@example.com", "wrong-pass", false)
	assert.Equal(t, "Incorrect password", apperrors.Message(err))

	_, err = env.svc.Auth.SignIn(ctx, "nobody@example.com", "password1", false)
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatusFromError(err))

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	broker := &domain.User{ID: uuid.New(), Username: "Meera", Email: "meera@example.com", PasswordHash: string(hash), IsBroker: true}
	require.NoError(t, env.repos.User.Create(ctx, broker))

	_, err = env.svc.Auth.SignIn(ctx, "meera@example.com", "password1", false)
	assert.Equal(t, "Brokers must log in via the broker login!", apperrors.Message(err))
	res, err = env.svc.Auth.SignIn(ctx, "meera@example.com", "password1", true)
	require.NoError(t, err)
	assert.Equal(t, "Welcome Back Meera!", res.Message)
}

func TestGoogleAuth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Auth.GoogleAuth(ctx, "", "g1@example.com", "")
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "user", first.User.Username)

	second, err := env.svc.Auth.GoogleAuth(ctx, "", "g2@example.com", "")
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.NotEqual(t, "user", second.User.Username)
	assert.Contains(t, second.User.Username, "user")

	again, err := env.svc.Auth.GoogleAuth(ctx, "", "g1@example.com", "")
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first.User.ID, again.User.ID)

	_, err = env.svc.Auth.GoogleAuth(ctx, "x", "", "")
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatusFromError(err))
}

func TestAdminLoginAndTokenRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Auth.AdminLogin(ctx, "admin@estate.test", "nope")
	assert.Equal(t, "Invalid Credentials", apperrors.Message(err))
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatusFromError(err))

	adminToken, err := env.svc.Auth.AdminLogin(ctx, "admin@estate.test", "admin-pass")
	require.NoError(t, err)

	_, err = env.svc.Auth.ValidateAdminToken(ctx, adminToken)
	assert.NoError(t, err)
	_, _, err = env.svc.Auth.ValidateUserToken(ctx, adminToken)
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatusFromError(err))

	res, err := env.svc.Auth.SignUp(ctx, "u", "u@example.com", "password1")
	require.NoError(t, err)
	_, err = env.svc.Auth.ValidateAdminToken(ctx, res.Token)
	assert.Equal(t, http.StatusForbidden, apperrors.HTTPStatusFromError(err))
}

func TestSignOutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Auth.SignUp(ctx, "u", "u@example.com", "password1")
	require.NoError(t, err)

	_, claims, err := env.svc.Auth.ValidateUserToken(ctx, res.Token)
	require.NoError(t, err)
	require.NoError(t, env.svc.Auth.SignOut(ctx, claims))

	_, _, err = env.svc.Auth.ValidateUserToken(ctx, res.Token)
	assert.Equal(t, "Token revoked", apperrors.Message(err))
}

func TestTokenOfDeletedUserIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Auth.SignUp(ctx, "u", "u@example.com", "password1")
	require.NoError(t, err)
	require.NoError(t, env.svc.Admin.DeleteUser(ctx, res.User.ID))

	_, _, err = env.svc.Auth.ValidateUserToken(ctx, res.Token)
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatusFromError(err))
}
