package cli

import (
	"errors"
	"fmt"

	"github.com/postit-dev/postit/internal/codec"
	"github.com/postit-dev/postit/internal/persist"
)

// NotFoundError indicates a task was not found.
type NotFoundError struct {
	Type string // "task"
	ID   string // the ID that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

// ValidationError indicates an invalid command argument.
type ValidationError struct {
	Field   string // the argument that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output and adds a
// hint for the error kinds a user can act on.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	msg := "error: " + err.Error()

	switch {
	case persist.IsUnsupported(err):
		// the message already lists the supported targets
	case persist.IsConflict(err):
		msg += "\nhint: pass --force or run 'postit config set --force-copy true'"
	case codec.IsFormatError(err):
		msg += "\nhint: fix the file by hand or copy a valid persister over it with --force"
	case errors.Is(err, persist.ErrNotFound):
		msg += "\nhint: add a task first or check the --persister value"
	}
	return msg
}
