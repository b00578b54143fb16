// Package model defines the core data structures for postit.
package model

import (
	"fmt"
	"strings"
)

// Priority represents the importance of a task.
type Priority string

const (
	PriorityHigh Priority = "high"
	PriorityMed  Priority = "med"
	PriorityLow  Priority = "low"
	PriorityNone Priority = "none"
)

// Priorities lists every valid priority, from most to least important.
var Priorities = []Priority{PriorityHigh, PriorityMed, PriorityLow, PriorityNone}

// ParsePriority parses a priority token such as "high" or " MED ".
// Unknown tokens are an error; there is no silent default.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q: must be one of high, med, low, none", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMed, PriorityLow, PriorityNone:
		return true
	}
	return false
}

// String returns the lowercase token used in every storage format.
func (p Priority) String() string {
	return string(p)
}

// DisplayName returns the human readable name of the priority.
func (p Priority) DisplayName() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMed:
		return "Medium"
	case PriorityLow:
		return "Low"
	case PriorityNone:
		return "None"
	}
	return string(p)
}

// Task represents a single entry of a task list.
type Task struct {
	ID       uint32   `json:"id" yaml:"id" db:"id" bson:"id"`
	Content  string   `json:"content" yaml:"content" db:"content" bson:"content"`
	Priority Priority `json:"priority" yaml:"priority" db:"priority" bson:"priority"`
	Checked  bool     `json:"checked" yaml:"checked" db:"checked" bson:"checked"`
}

// NewTask returns an unchecked task.
func NewTask(id uint32, content string, priority Priority) Task {
	return Task{ID: id, Content: content, Priority: priority}
}

