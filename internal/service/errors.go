package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrGoalExists      = errors.New("you already have a learning goal, edit it instead")
)

// ValidationError is a user input problem tied to one form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: err.Error()}
}

// TransientError is a store failure. The operation was abandoned and may
// succeed if the user tries again later.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// UserMessage converts an error into text that is safe to show to the user.
func UserMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var transientErr *TransientError
	switch {
	case errors.As(err, &transientErr):
		return "Something went wrong while saving your data. Please try again in a moment."
	case errors.Is(err, ErrNotFound):
		return "We couldn't find what you were looking for."
	case errors.Is(err, ErrUnauthenticated):
		return "Please sign in to continue."
	case errors.Is(err, ErrGoalExists):
		return ErrGoalExists.Error()
	}
	return "An unexpected error occurred."
}
