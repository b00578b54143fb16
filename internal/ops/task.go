package ops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/postit-dev/postit/internal/model"
	"github.com/postit-dev/postit/internal/persist"
)

// ErrNoPersister is returned when editing tasks of a persister that does not
// exist yet.
var ErrNoPersister = errors.New("the persister doesn't exist; add a task first to use this command")

// ValidateContent checks that task content is not empty or whitespace-only.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("task content must not be empty")
	}
	return nil
}

// View returns the stored task list. A persister that does not exist yet
// holds no tasks.
func View(ctx context.Context, s Store) (*model.TaskList, error) {
	ok, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.NewTaskList(), nil
	}
	return s.Read(ctx)
}

// Add appends a new task, creating the persister if needed, and returns it.
func Add(ctx context.Context, s Store, content string, priority model.Priority) (model.Task, error) {
	if err := ValidateContent(content); err != nil {
		return model.Task{}, err
	}
	if !priority.Valid() {
		return model.Task{}, fmt.Errorf("invalid priority %q", priority)
	}

	l, err := View(ctx, s)
	if err != nil {
		return model.Task{}, err
	}

	task, err := l.Add(content, priority)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.Save(ctx, l); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Check marks tasks as checked.
func Check(ctx context.Context, s Store, ids []uint32) (model.EditResult, error) {
	return edit(ctx, s, func(l *model.TaskList) model.EditResult {
		return l.Check(ids)
	})
}

// Uncheck marks tasks as unchecked.
func Uncheck(ctx context.Context, s Store, ids []uint32) (model.EditResult, error) {
	return edit(ctx, s, func(l *model.TaskList) model.EditResult {
		return l.Uncheck(ids)
	})
}

// Drop removes checked tasks, or any task when force is set. Unchecked tasks
// are reported as skipped.
func Drop(ctx context.Context, s Store, ids []uint32, force bool) (model.EditResult, error) {
	return edit(ctx, s, func(l *model.TaskList) model.EditResult {
		return l.Drop(ids, force)
	})
}

// SetContent replaces the content of tasks.
func SetContent(ctx context.Context, s Store, ids []uint32, content string) (model.EditResult, error) {
	if err := ValidateContent(content); err != nil {
		return model.EditResult{}, err
	}
	return edit(ctx, s, func(l *model.TaskList) model.EditResult {
		return l.SetContent(ids, content)
	})
}

// SetPriority replaces the priority of tasks.
func SetPriority(ctx context.Context, s Store, ids []uint32, priority model.Priority) (model.EditResult, error) {
	if !priority.Valid() {
		return model.EditResult{}, fmt.Errorf("invalid priority %q", priority)
	}
	return edit(ctx, s, func(l *model.TaskList) model.EditResult {
		return l.SetPriority(ids, priority)
	})
}

// edit reads the list, applies fn and saves only when something changed.
func edit(ctx context.Context, s Store, fn func(l *model.TaskList) model.EditResult) (model.EditResult, error) {
	ok, err := s.Exists(ctx)
	if err != nil {
		return model.EditResult{}, err
	}
	if !ok {
		return model.EditResult{}, ErrNoPersister
	}

	l, err := s.Read(ctx)
	if err != nil {
		return model.EditResult{}, err
	}

	result := fn(l)
	if !result.HasChanges() {
		return result, nil
	}
	if err := s.Save(ctx, l); err != nil {
		return model.EditResult{}, err
	}
	return result, nil
}

// Sample replaces the stored tasks with demo data.
func Sample(ctx context.Context, s Store) (*model.TaskList, error) {
	l := model.Sample()
	if err := s.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Clean removes every task but keeps the persister.
func Clean(ctx context.Context, s Store) error {
	return s.Clean(ctx)
}

// Remove deletes the persister.
func Remove(ctx context.Context, s Store) error {
	return s.Remove(ctx)
}

// CopyOptions mirrors the force_copy and drop_after_copy settings.
type CopyOptions = persist.CopyOptions

// Copy transfers every task from src to dst.
func Copy(ctx context.Context, src, dst persist.Persister, opts CopyOptions) (persist.CopyResult, error) {
	return persist.Copy(ctx, src, dst, opts)
}
