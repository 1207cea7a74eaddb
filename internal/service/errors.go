package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// It is returned both for unknown emails and for wrong passwords so callers
	// cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already has an account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrTaskNotFound is returned when a task does not exist or belongs to
	// another user; the two cases are indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError reports a rejected input field. Its message is safe to echo
// back to the caller.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
