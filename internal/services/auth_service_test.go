package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users, err := storage.NewUserStore(t.TempDir())
	require.NoError(t, err)
	svc := NewAuthService(users, testLogger())

	user, err := svc.Register(ctx, "kaiky", "Kaiky@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "kaiky@example.com", user.Email)

	// Same email again, regardless of case.
	_, err = svc.Register(ctx, "again", "kaiky@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Same username with a fresh email.
	_, err = svc.Register(ctx, "Kaiky", "fresh@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	logged, err := svc.Login(ctx, "kaiky@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	// The username works as the login identifier too.
	logged, err = svc.Login(ctx, "kaiky", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, "kaiky@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRejectsWeakInput(t *testing.T) {
	ctx := context.Background()
	users, err := storage.NewUserStore(t.TempDir())
	require.NoError(t, err)
	svc := NewAuthService(users, testLogger())

	_, err = svc.Register(ctx, "kaiky", "not-an-email", "secret1")
	assert.ErrorIs(t, err, core.ErrInvalidEmail)

	_, err = svc.Register(ctx, "kaiky", "a@b.c", "short")
	assert.ErrorIs(t, err, core.ErrWeakPassword)
}
