package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/postit-dev/postit/internal/codec"
	"github.com/postit-dev/postit/internal/model"
)

// File stores a task list in a single file whose format is chosen by its
// extension.
type File struct {
	path   string
	codec  codec.Codec
	logger *log.Logger
}

// NewFile returns a File persister for path using c.
func NewFile(path string, c codec.Codec, logger *log.Logger) *File {
	return &File{path: path, codec: c, logger: orDiscard(logger)}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Kind() Kind { return KindFile }

func (f *File) String() string { return f.path }

func (f *File) Close() error { return nil }

// Exists reports whether the file exists.
func (f *File) Exists(ctx context.Context) (bool, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, opError("access", f, err)
	}
	if info.IsDir() {
		return false, opError("access", f, fmt.Errorf("%s is a directory", f.path))
	}
	return true, nil
}

// Read decodes the file. A missing file is an error wrapping ErrNotFound;
// an empty file is an empty list.
func (f *File) Read(ctx context.Context) (*model.TaskList, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, opError("read", f, ErrNotFound)
		}
		return nil, opError("read", f, err)
	}

	l, err := f.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}

	f.logger.Debug("read tasks", "file", f.path, "format", f.codec.Name(), "count", l.Len())
	return l, nil
}

// Save overwrites the file with l.
func (f *File) Save(ctx context.Context, l *model.TaskList) error {
	data, err := f.codec.Encode(l)
	if err != nil {
		return opError("save", f, err)
	}
	if err := writeFileAtomic(f.path, data, 0644); err != nil {
		return opError("save", f, err)
	}

	f.logger.Debug("saved tasks", "file", f.path, "format", f.codec.Name(), "count", l.Len())
	return nil
}

// Clean rewrites the file with an empty list.
func (f *File) Clean(ctx context.Context) error {
	return f.Save(ctx, model.NewTaskList())
}

// Remove deletes the file.
func (f *File) Remove(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return opError("remove", f, err)
	}
	f.logger.Debug("removed file", "file", f.path)
	return nil
}

// writeFileAtomic writes data to a temporary file in the same directory and
// renames it over path, so readers never observe a partial write.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up on every failure path
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	committed = true
	return nil
}
