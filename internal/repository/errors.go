package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row. Owner-scoped task
	// lookups return it both for missing ids and for tasks owned by someone
	// else, so callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert violates the unique email
	// constraint. The constraint is the sole duplicate check; there is no
	// read-before-write existence test.
	ErrDuplicateEmail = errors.New("email already registered")
)
