package user

import (
	"errors"
	"fmt"

	"github.com/rpggio/gigboard/internal/domain"
)

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = fmt.Errorf("user not found: %w", domain.ErrNotFound)
	// ErrInvalidInput indicates invalid registration input.
	ErrInvalidInput = fmt.Errorf("invalid user input: %w", domain.ErrInvalidInput)
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = fmt.Errorf("email already registered: %w", domain.ErrConflict)
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
