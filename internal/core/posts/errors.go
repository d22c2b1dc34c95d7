package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post lookup finds no matching record
	ErrNotFound = errors.New("post not found")

	// ErrNotAuthor is returned when an authenticated requester attempts to
	// edit a post they do not own. Distinct from ErrNotFound: the post exists,
	// the requester may not act on it.
	ErrNotAuthor = errors.New("requester is not the post author")

	// ErrAuthRequired is returned when an anonymous requester attempts to
	// create or edit a post. Handlers map this to an authentication prompt.
	ErrAuthRequired = errors.New("authentication required")

	// ErrGroupNotFound is returned when a referenced group does not exist
	ErrGroupNotFound = errors.New("group not found")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
