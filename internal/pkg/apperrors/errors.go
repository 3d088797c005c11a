package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Generation errors
	ErrGenerationFailed = errors.New("match generation failed")

	// Internal errors
	ErrInternal = errors.New("internal error")
)

// Profile errors
var (
	ErrProfileNotFound = fmt.Errorf("profile not found: %w", ErrResourceNotFound)
)

// ValidationError reports the first offending input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidationFailed
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// GenerationError wraps any failure of the external AI service or of its reply.
type GenerationError struct {
	Cause error
}

// NewGenerationError wraps cause into a GenerationError
func NewGenerationError(cause error) *GenerationError {
	return &GenerationError{Cause: cause}
}

// Error implements error interface
func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return ErrGenerationFailed.Error()
	}
	return fmt.Sprintf("%s: %v", ErrGenerationFailed, e.Cause)
}

// Unwrap exposes both the sentinel and the cause
func (e *GenerationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrGenerationFailed}
	}
	return []error{ErrGenerationFailed, e.Cause}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// AsValidation extracts a *ValidationError from err
func AsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
