package feeds

import (
	"errors"
	"fmt"
)

var (
	// ErrGroupNotFound is returned when a group slug matches no group.
	// Distinct from an empty listing, which is a valid empty success.
	ErrGroupNotFound = errors.New("group not found")

	// ErrUserNotFound is returned when a username matches no user
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
