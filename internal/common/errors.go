package common

import "errors"

var (
	// ErrNotFound is the repository-level sentinel for a missing record.
	// Callers match it with errors.Is.
	ErrNotFound = errors.New("not found")
)
