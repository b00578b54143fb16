package persist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when reading a persister whose storage does not exist.
	ErrNotFound = errors.New("persister does not exist")

	// ErrSamePersister is returned when copying a persister onto itself.
	ErrSamePersister = errors.New("source and target are the same persister")

	// ErrEmptySource is returned when copying from a persister that has no tasks.
	ErrEmptySource = errors.New("source persister has no tasks to copy")
)

// UnsupportedError indicates a path or connection string that no persister
// can handle. It is returned before any I/O is attempted.
type UnsupportedError struct {
	Target string // the path or connection string
	Reason string // what was not recognized
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported persister %q: %s (supported: %s)",
		e.Target, e.Reason, strings.Join(SupportedTargets(), ", "))
}

// Error indicates a failed operation on a storage backend.
type Error struct {
	Op     string // "read", "save", "clean", "remove", "exists", "open"
	Target string // persister description
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConflictError indicates that a copy target already holds tasks.
type ConflictError struct {
	Target string
	Tasks  int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("the persister %s already has %d task(s); set force_copy to overwrite them", e.Target, e.Tasks)
}

// IsUnsupported reports whether err is, or wraps, an *UnsupportedError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}

// IsConflict reports whether err is, or wraps, a *ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsPersisterError reports whether err is, or wraps, a backend *Error.
func IsPersisterError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

func opError(op string, p Persister, err error) error {
	return &Error{Op: op, Target: p.String(), Err: err}
}
