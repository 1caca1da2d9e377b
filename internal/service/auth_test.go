package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register(context.Background(), "Anna", "anna@example.com", "supersecret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Register(context.Background(), "Anna", "anna@example.com", "supersecret1")
	assert.ErrorIs(t, err, ErrUserExists)

	loginToken, err := svc.Login(context.Background(), "anna@example.com", "supersecret1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", claims.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "Anna", "anna@example.com", "supersecret1")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "anna@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "supersecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")

	token, err := svc.Register(context.Background(), "Anna", "anna2@example.com", "supersecret1")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
