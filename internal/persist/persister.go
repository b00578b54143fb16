// Package persist stores task lists in files and databases behind one
// Persister interface.
package persist

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/postit-dev/postit/internal/logging"
	"github.com/postit-dev/postit/internal/model"
)

// Kind identifies the backend family of a persister.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMongo  Kind = "mongodb"
)

// Persister stores exactly one task list.
//
// Read always materializes a fresh TaskList and Save persists a full
// snapshot; no backend keeps a reference to a list it was given.
// Implementations acquire connections lazily and release them in Close.
type Persister interface {
	// Exists reports whether the underlying file, table or collection exists.
	Exists(ctx context.Context) (bool, error)
	// Read loads the stored task list.
	Read(ctx context.Context) (*model.TaskList, error)
	// Save replaces the stored task list with l.
	Save(ctx context.Context, l *model.TaskList) error
	// Clean removes every task but keeps the storage.
	Clean(ctx context.Context) error
	// Remove deletes the storage. Removing missing storage is not an error.
	Remove(ctx context.Context) error
	// Kind returns the backend family.
	Kind() Kind
	// String describes the storage location for messages.
	String() string
	// Close releases any open connection.
	Close() error
}

// Option configures a persister created by Resolve.
type Option func(*resolveOptions)

type resolveOptions struct {
	root   string
	logger *log.Logger
}

// WithRoot resolves relative file and SQLite paths against dir.
func WithRoot(dir string) Option {
	return func(o *resolveOptions) { o.root = dir }
}

// WithLogger sets the logger used for backend diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *resolveOptions) { o.logger = l }
}

func buildOptions(opts []Option) resolveOptions {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = orDiscard(o.logger)
	return o
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return logging.Discard()
	}
	return l
}
