package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrIDsExhausted is returned by Add when the highest id is already the
// largest representable id.
var ErrIDsExhausted = errors.New("no task id left: the highest id is already 4294967295")

// TaskList is an ordered collection of tasks.
// The order of Tasks is the display order.
type TaskList struct {
	Tasks []Task
}

// EditResult summarizes a batch operation on a task list.
type EditResult struct {
	// Changed lists tasks that were modified or removed.
	Changed []uint32
	// Unchanged lists tasks that were already in the requested state.
	Unchanged []uint32
	// Skipped lists tasks that did not meet the precondition (e.g. dropping
	// an unchecked task without force).
	Skipped []uint32
	// NotFound lists requested ids that match no task.
	NotFound []uint32
}

// HasChanges reports whether the operation modified the list.
func (r EditResult) HasChanges() bool {
	return len(r.Changed) > 0
}

// NewTaskList returns a list holding the given tasks.
func NewTaskList(tasks ...Task) *TaskList {
	return &TaskList{Tasks: tasks}
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.Tasks)
}

// IsEmpty reports whether the list holds no tasks.
func (l *TaskList) IsEmpty() bool {
	return len(l.Tasks) == 0
}

// IDs returns the task ids in display order.
func (l *TaskList) IDs() []uint32 {
	ids := make([]uint32, len(l.Tasks))
	for i, t := range l.Tasks {
		ids[i] = t.ID
	}
	return ids
}

// Get returns the task with the given id.
func (l *TaskList) Get(id uint32) (Task, bool) {
	for _, t := range l.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// NextID returns the id the next added task will receive:
// the highest existing id plus one, or 1 for an empty list.
func (l *TaskList) NextID() (uint32, error) {
	var maxID uint32
	for _, t := range l.Tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	if maxID == math.MaxUint32 {
		return 0, ErrIDsExhausted
	}
	return maxID + 1, nil
}

// Add appends a new unchecked task and returns it. The list is left
// untouched when no id is left.
func (l *TaskList) Add(content string, priority Priority) (Task, error) {
	id, err := l.NextID()
	if err != nil {
		return Task{}, err
	}
	task := NewTask(id, content, priority)
	l.Tasks = append(l.Tasks, task)
	return task, nil
}

// Check marks the given tasks as checked.
func (l *TaskList) Check(ids []uint32) EditResult {
	return l.setChecked(ids, true)
}

// Uncheck marks the given tasks as unchecked.
func (l *TaskList) Uncheck(ids []uint32) EditResult {
	return l.setChecked(ids, false)
}

func (l *TaskList) setChecked(ids []uint32, checked bool) EditResult {
	return l.apply(ids, func(t *Task) bool {
		if t.Checked == checked {
			return false
		}
		t.Checked = checked
		return true
	})
}

// SetContent replaces the content of the given tasks.
func (l *TaskList) SetContent(ids []uint32, content string) EditResult {
	return l.apply(ids, func(t *Task) bool {
		if t.Content == content {
			return false
		}
		t.Content = content
		return true
	})
}

// SetPriority replaces the priority of the given tasks.
func (l *TaskList) SetPriority(ids []uint32, priority Priority) EditResult {
	return l.apply(ids, func(t *Task) bool {
		if t.Priority == priority {
			return false
		}
		t.Priority = priority
		return true
	})
}

// apply runs fn on every task whose id is requested. fn reports whether it
// modified the task.
func (l *TaskList) apply(ids []uint32, fn func(t *Task) bool) EditResult {
	var result EditResult
	for _, id := range dedupe(ids) {
		idx := l.index(id)
		if idx < 0 {
			result.NotFound = append(result.NotFound, id)
			continue
		}
		if fn(&l.Tasks[idx]) {
			result.Changed = append(result.Changed, id)
		} else {
			result.Unchanged = append(result.Unchanged, id)
		}
	}
	return result
}

// Drop removes the given tasks. Unchecked tasks are only removed when force
// is set; otherwise they are left in place and reported as skipped.
func (l *TaskList) Drop(ids []uint32, force bool) EditResult {
	var result EditResult
	remove := make(map[uint32]bool)

	for _, id := range dedupe(ids) {
		task, ok := l.Get(id)
		switch {
		case !ok:
			result.NotFound = append(result.NotFound, id)
		case task.Checked || force:
			remove[id] = true
			result.Changed = append(result.Changed, id)
		default:
			result.Skipped = append(result.Skipped, id)
		}
	}

	if len(remove) > 0 {
		l.Tasks = slices.DeleteFunc(l.Tasks, func(t Task) bool {
			return remove[t.ID]
		})
	}
	return result
}

// Clean removes every task.
func (l *TaskList) Clean() {
	l.Tasks = nil
}

// Validate checks that every id is non-zero and unique and that every
// priority is known.
func (l *TaskList) Validate() error {
	seen := make(map[uint32]bool, len(l.Tasks))
	for _, t := range l.Tasks {
		if t.ID == 0 {
			return fmt.Errorf("task %q has no id", t.Content)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = true
		if !t.Priority.Valid() {
			return fmt.Errorf("task %d has invalid priority %q", t.ID, t.Priority)
		}
	}
	return nil
}

func (l *TaskList) index(id uint32) int {
	return slices.IndexFunc(l.Tasks, func(t Task) bool { return t.ID == id })
}

// dedupe drops repeated ids while keeping the first occurrence order.
func dedupe(ids []uint32) []uint32 {
	seen := make(map[uint32]bool, len(ids))
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
