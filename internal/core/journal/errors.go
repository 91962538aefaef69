package journal

import (
	"errors"
	"fmt"

	"github.com/daylio-dash/daylio-dash/internal/model"
)

// ValidationError represents a rejected entry creation request. Message is
// the user-facing text.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Is matches model.ErrValidation.
func (e ValidationError) Is(target error) bool { return target == model.ErrValidation }

// NewValidationError creates a new validation error
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error (including wrapped errors)
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
