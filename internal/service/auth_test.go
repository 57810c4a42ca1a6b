package service_test

import (
	"testing"

	"webshop-demo/internal/service"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(ctx(), "alice@example.com", "Alice", "pass123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "pass123", user.PasswordHash, "password must never be stored in plain text")

	loggedIn, err := env.auth.Login(ctx(), "alice@example.com", "pass123")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx(), "alice@example.com", "Alice", "pass123")
	require.NoError(t, err)

	_, err = env.auth.Login(ctx(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(ctx(), "nobody@example.com", "pass123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx(), "alice@example.com", "Alice", "pass123")
	require.NoError(t, err)

	_, err = env.auth.Register(ctx(), "alice@example.com", "Other Alice", "pass456")
	require.ErrorIs(t, err, service.ErrEmailTaken)
}
