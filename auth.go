package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack/models"

	"golang.org/x/crypto/bcrypt"
)

// registerUser creates a user with a bcrypt hash of the password. The raw
// password is never stored or logged.
func registerUser(ctx context.Context, users UserStore, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email required")
	}
	if len(password) < 6 { // basic password policy
		return nil, fmt.Errorf("password too short (min 6)")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: name, Email: email, HashedPassword: hashed}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// authenticateUser verifies email+password. An unknown email and a wrong
// password both come back as ErrInvalidCredentials so neither condition
// leaks which one failed.
func authenticateUser(ctx context.Context, users UserStore, email, password string) (*models.User, error) {
	user, err := users.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
