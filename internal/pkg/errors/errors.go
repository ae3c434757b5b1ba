package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the sentinel for ids that do not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict is the sentinel for uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference is the sentinel for missing foreign-key targets.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInternal is the sentinel for post-validation operations that
	// failed in a way that should not occur.
	ErrInternal = errors.New("internal error")
)

// DependentsError blocks a category deletion while contracts reference it.
type DependentsError struct {
	Count int64
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("category has %d associated contracts", e.Count)
}
