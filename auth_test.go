package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	user, err := registerUser(ctx, store, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, []byte("hunter22"), user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.HashedPassword, []byte("hunter22")))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	_, err := registerUser(ctx, store, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, err = registerUser(ctx, store, "Ada Again", "ada@example.com", "different1")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterUserValidation(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	_, err := registerUser(ctx, store, "", "a@example.com", "hunter22")
	assert.Error(t, err)

	_, err = registerUser(ctx, store, "Ada", "not-an-email", "hunter22")
	assert.Error(t, err)

	_, err = registerUser(ctx, store, "Ada", "a@example.com", "short")
	assert.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	_, err := registerUser(ctx, store, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	user, err := authenticateUser(ctx, store, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestAuthenticateUserUniformFailure(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	_, err := registerUser(ctx, store, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	// wrong password and unknown email must be indistinguishable
	_, wrongPw := authenticateUser(ctx, store, "ada@example.com", "nope-nope")
	_, noUser := authenticateUser(ctx, store, "ghost@example.com", "hunter22")
	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPw, noUser)
}
