package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginDefaultAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Login(LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(LoginRequest{Username: "nobody", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)

	err := env.auth.ChangePassword("admin", ChangePasswordRequest{
		OldPassword: "admin123",
		NewPassword: "new-secret",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(LoginRequest{Username: "admin", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := env.auth.Login(LoginRequest{Username: "admin", Password: "new-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestChangePasswordGuards(t *testing.T) {
	env := newTestEnv(t)

	err := env.auth.ChangePassword("admin", ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-secret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = env.auth.ChangePassword("admin", ChangePasswordRequest{
		OldPassword: "admin123",
		NewPassword: "tiny",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
