package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/postit-dev/postit/internal/model"
	"gopkg.in/yaml.v3"
)

// YAML stores tasks under a top-level "tasks" sequence.
type YAML struct{}

type yamlDocument struct {
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID       *uint32 `yaml:"id"`
	Content  *string `yaml:"content"`
	Priority *string `yaml:"priority"`
	Checked  *bool   `yaml:"checked"`
}

func (YAML) Name() string { return "yaml" }

// Encode builds the document as a yaml.Node tree so the field order is fixed
// and multi-line content uses block scalar style.
func (c YAML) Encode(l *model.TaskList) ([]byte, error) {
	if err := checkContent(c.Name(), l, nil); err != nil {
		return nil, err
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}

	tasksNode := &yaml.Node{Kind: yaml.SequenceNode}
	if len(l.Tasks) == 0 {
		tasksNode.Style = yaml.FlowStyle
	}
	for _, t := range l.Tasks {
		tasksNode.Content = append(tasksNode.Content, buildTaskNode(t))
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "tasks"},
		tasksNode,
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (c YAML) Decode(data []byte) (*model.TaskList, error) {
	if isBlank(data) {
		return model.NewTaskList(), nil
	}

	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &FormatError{Format: c.Name(), Err: err}
	}

	l := model.NewTaskList()
	for i, item := range doc.Tasks {
		task, err := item.task()
		if err != nil {
			return nil, &FormatError{Format: c.Name(), Record: i + 1, Err: err}
		}
		l.Tasks = append(l.Tasks, task)
	}
	return finish(c.Name(), l)
}

func (y yamlTask) task() (model.Task, error) {
	if y.ID == nil || y.Content == nil || y.Priority == nil || y.Checked == nil {
		return model.Task{}, fmt.Errorf("task must have id, content, priority and checked keys")
	}
	priority, err := model.ParsePriority(*y.Priority)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:       *y.ID,
		Content:  *y.Content,
		Priority: priority,
		Checked:  *y.Checked,
	}, nil
}

// buildTaskNode creates a yaml.Node for a Task.
func buildTaskNode(t model.Task) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addIntField(node, "id", t.ID)
	addStringField(node, "content", t.Content)
	addStringField(node, "priority", t.Priority.String())
	addBoolField(node, "checked", t.Checked)

	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	// Block style keeps multi-line content readable
	var style yaml.Style
	if strings.Contains(value, "\n") {
		style = yaml.LiteralStyle
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str", Style: style},
	)
}

func addIntField(node *yaml.Node, key string, value uint32) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", value), Tag: "!!int"},
	)
}

func addBoolField(node *yaml.Node, key string, value bool) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%t", value), Tag: "!!bool"},
	)
}
