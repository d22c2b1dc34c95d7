package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when attempting to register a username that
	// already belongs to another user
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when a login attempt fails.
	// Deliberately does not distinguish unknown username from wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// InvalidUsernameError is returned when a username does not meet format requirements
type InvalidUsernameError struct {
	Username string
	Reason   string
}

func (e *InvalidUsernameError) Error() string {
	return fmt.Sprintf("invalid username %q: %s", e.Username, e.Reason)
}

// WeakPasswordError is returned when a password does not meet strength requirements
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet strength requirements: %s", e.Reason)
}

// IsValidationError reports whether err is a signup validation failure
func IsValidationError(err error) bool {
	var invalidUsername *InvalidUsernameError
	var weakPassword *WeakPasswordError
	return errors.As(err, &invalidUsername) || errors.As(err, &weakPassword)
}
