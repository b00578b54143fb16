// Package codec encodes and decodes task lists in the supported file formats.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/postit-dev/postit/internal/model"
)

// Codec converts a task list to and from one file format.
// Decode is all-or-nothing: on error no partial list is returned.
type Codec interface {
	// Name returns the format name, e.g. "csv".
	Name() string
	Encode(l *model.TaskList) ([]byte, error)
	Decode(data []byte) (*model.TaskList, error)
}

// FormatError indicates malformed content that could not be decoded.
type FormatError struct {
	Format string // codec name
	Record int    // 1-based record or line number, 0 if unknown
	Err    error
}

func (e *FormatError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("invalid %s data (record %d): %v", e.Format, e.Record, e.Err)
	}
	return fmt.Sprintf("invalid %s data: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ContentError indicates task content that a format cannot store unchanged.
// It is returned by Encode before anything is written.
type ContentError struct {
	Format string // codec name
	ID     uint32 // task id
	Reason string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("%s cannot store the content of task %d: %s", e.Format, e.ID, e.Reason)
}

// IsContentError reports whether err is, or wraps, a *ContentError.
func IsContentError(err error) bool {
	var ce *ContentError
	return errors.As(err, &ce)
}

// checkContent rejects content that is not valid UTF-8 or that reject
// reports a reason for. reject may be nil.
func checkContent(format string, l *model.TaskList, reject func(content string) string) error {
	for _, t := range l.Tasks {
		if !utf8.ValidString(t.Content) {
			return &ContentError{Format: format, ID: t.ID, Reason: "content is not valid UTF-8"}
		}
		if reject == nil {
			continue
		}
		if reason := reject(t.Content); reason != "" {
			return &ContentError{Format: format, ID: t.ID, Reason: reason}
		}
	}
	return nil
}

// IsFormatError reports whether err is, or wraps, a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

var registry = map[string]Codec{
	".csv":  CSV{},
	".json": JSON{},
	".xml":  XML{},
	".yaml": YAML{},
	".yml":  YAML{},
}

// ForExtension returns the codec registered for a file extension such as
// ".json". Matching is case-insensitive.
func ForExtension(ext string) (Codec, bool) {
	c, ok := registry[strings.ToLower(ext)]
	return c, ok
}

// Extensions returns all supported file extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// isBlank reports whether data holds only whitespace.
func isBlank(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

// finish validates a decoded list, turning validation failures into format errors.
func finish(format string, l *model.TaskList) (*model.TaskList, error) {
	if err := l.Validate(); err != nil {
		return nil, &FormatError{Format: format, Err: err}
	}
	return l, nil
}

// parseChecked parses the literal "true"/"false" tokens.
func parseChecked(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid checked value %q: must be true or false", s)
}
