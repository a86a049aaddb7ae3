package coaching

import (
	"errors"
	"fmt"
)

// Contract violations. Every one of them is returned wrapped in a
// *ValidationError so callers can match with errors.Is or errors.As.
var (
	ErrUnknownGoal         = errors.New("unknown goal")
	ErrUnknownExperience   = errors.New("unknown experience level")
	ErrInvalidPhase        = errors.New("phase must be between 1 and 4")
	ErrMissingExerciseName = errors.New("exercise name is required")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, value string, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
