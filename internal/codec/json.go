package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/postit-dev/postit/internal/model"
)

// JSON stores tasks as {"tasks": [{"id", "content", "priority", "checked"}]}.
// A bare array of task objects is also accepted on read.
type JSON struct{}

type jsonDocument struct {
	Tasks []jsonTask `json:"tasks"`
}

// jsonTask uses pointers so that missing fields can be told apart from zero values.
type jsonTask struct {
	ID       *uint32 `json:"id"`
	Content  *string `json:"content"`
	Priority *string `json:"priority"`
	Checked  *bool   `json:"checked"`
}

func (JSON) Name() string { return "json" }

func (c JSON) Encode(l *model.TaskList) ([]byte, error) {
	if err := checkContent(c.Name(), l, nil); err != nil {
		return nil, err
	}

	doc := jsonDocument{Tasks: make([]jsonTask, 0, len(l.Tasks))}
	for _, t := range l.Tasks {
		t := t // per-iteration copy: pointers below must not alias (go 1.21 loop semantics)
		doc.Tasks = append(doc.Tasks, jsonTask{
			ID:       &t.ID,
			Content:  &t.Content,
			Priority: ptr(t.Priority.String()),
			Checked:  &t.Checked,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return append(data, '\n'), nil
}

func (c JSON) Decode(data []byte) (*model.TaskList, error) {
	if isBlank(data) {
		return model.NewTaskList(), nil
	}

	var items []jsonTask
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		if err := strictUnmarshal(trimmed, &items); err != nil {
			return nil, &FormatError{Format: c.Name(), Err: err}
		}
	} else {
		var doc jsonDocument
		if err := strictUnmarshal(trimmed, &doc); err != nil {
			return nil, &FormatError{Format: c.Name(), Err: err}
		}
		items = doc.Tasks
	}

	l := model.NewTaskList()
	for i, item := range items {
		task, err := item.task()
		if err != nil {
			return nil, &FormatError{Format: c.Name(), Record: i + 1, Err: err}
		}
		l.Tasks = append(l.Tasks, task)
	}
	return finish(c.Name(), l)
}

func (j jsonTask) task() (model.Task, error) {
	if j.ID == nil || j.Content == nil || j.Priority == nil || j.Checked == nil {
		return model.Task{}, fmt.Errorf("task must have id, content, priority and checked fields")
	}
	priority, err := model.ParsePriority(*j.Priority)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:       *j.ID,
		Content:  *j.Content,
		Priority: priority,
		Checked:  *j.Checked,
	}, nil
}

// strictUnmarshal rejects unknown fields and trailing data.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after top-level value")
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
