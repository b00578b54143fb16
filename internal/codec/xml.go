package codec

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/postit-dev/postit/internal/model"
)

// XML stores tasks as <tasks><task><id/><content/><priority/><checked/></task></tasks>.
type XML struct{}

type xmlDocument struct {
	XMLName xml.Name  `xml:"tasks"`
	Tasks   []xmlTask `xml:"task"`
}

type xmlTask struct {
	ID       *string     `xml:"id"`
	Content  *string     `xml:"content"`
	Priority *string     `xml:"priority"`
	Checked  *string     `xml:"checked"`
	Unknown  []xmlAnyTag `xml:",any"`
}

type xmlAnyTag struct {
	XMLName xml.Name
}

func (XML) Name() string { return "xml" }

// Encode rejects characters outside the XML 1.0 character range.
func (c XML) Encode(l *model.TaskList) ([]byte, error) {
	if err := checkContent(c.Name(), l, rejectNonXMLChar); err != nil {
		return nil, err
	}

	doc := xmlDocument{Tasks: make([]xmlTask, 0, len(l.Tasks))}
	for _, t := range l.Tasks {
		doc.Tasks = append(doc.Tasks, xmlTask{
			ID:       ptr(strconv.FormatUint(uint64(t.ID), 10)),
			Content:  ptr(t.Content),
			Priority: ptr(t.Priority.String()),
			Checked:  ptr(strconv.FormatBool(t.Checked)),
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	return append(out, '\n'), nil
}

func rejectNonXMLChar(content string) string {
	for _, r := range content {
		if !isXMLChar(r) {
			return fmt.Sprintf("content contains character %U, which XML cannot hold", r)
		}
	}
	return ""
}

// isXMLChar reports whether r is in the Char production of XML 1.0.
func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

func (c XML) Decode(data []byte) (*model.TaskList, error) {
	if isBlank(data) {
		return model.NewTaskList(), nil
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
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

func (x xmlTask) task() (model.Task, error) {
	if len(x.Unknown) > 0 {
		return model.Task{}, fmt.Errorf("unexpected element <%s>", x.Unknown[0].XMLName.Local)
	}
	if x.ID == nil || x.Content == nil || x.Priority == nil || x.Checked == nil {
		return model.Task{}, fmt.Errorf("task must have id, content, priority and checked elements")
	}

	id, err := strconv.ParseUint(strings.TrimSpace(*x.ID), 10, 32)
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid id %q", *x.ID)
	}
	priority, err := model.ParsePriority(*x.Priority)
	if err != nil {
		return model.Task{}, err
	}
	checked, err := parseChecked(*x.Checked)
	if err != nil {
		return model.Task{}, err
	}

	return model.Task{
		ID:       uint32(id),
		Content:  *x.Content,
		Priority: priority,
		Checked:  checked,
	}, nil
}
