package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLessonNotFound is returned when an operation references a missing lesson id.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrNoLessonSelected is returned when an operation needs a selection and none exists.
	ErrNoLessonSelected = errors.New("no lesson selected")
	// ErrNoQuiz is returned when a quiz run is started on a lesson without questions.
	ErrNoQuiz = errors.New("lesson has no quiz")
	// ErrSessionClosed is returned when an editor session is used after submit.
	ErrSessionClosed = errors.New("editor session already closed")
)

// ValidationError reports a blank required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a named field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ImportError wraps a snapshot decode failure. State is guaranteed untouched
// when an import fails with this error.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("invalid import file: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
