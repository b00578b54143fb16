package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/postit-dev/postit/internal/model"
)

// csvHeader is the header row written by older versions; it is skipped on read.
var csvHeader = []string{"id", "content", "priority", "checked"}

// CSV stores one task per line as id,content,priority,checked with no header.
type CSV struct{}

func (CSV) Name() string { return "csv" }

// Encode rejects carriage returns: quoted fields read back with "\r\n"
// turned into "\n".
func (c CSV) Encode(l *model.TaskList) ([]byte, error) {
	if err := checkContent(c.Name(), l, rejectCarriageReturn); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, t := range l.Tasks {
		record := []string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Content,
			t.Priority.String(),
			strconv.FormatBool(t.Checked),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to encode task %d: %w", t.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

func rejectCarriageReturn(content string) string {
	if strings.ContainsRune(content, '\r') {
		return "content contains a carriage return"
	}
	return ""
}

func (c CSV) Decode(data []byte) (*model.TaskList, error) {
	l := model.NewTaskList()
	if isBlank(data) {
		return l, nil
	}

	// Trailing whitespace would otherwise be read as a short record.
	data = append(bytes.TrimRight(data, " \t\r\n"), '\n')

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	for record := 1; ; record++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Format: c.Name(), Record: record, Err: err}
		}

		if record == 1 && isCSVHeader(fields) {
			continue
		}

		task, err := parseCSVRecord(fields)
		if err != nil {
			return nil, &FormatError{Format: c.Name(), Record: record, Err: err}
		}
		l.Tasks = append(l.Tasks, task)
	}

	return finish(c.Name(), l)
}

func parseCSVRecord(fields []string) (model.Task, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid id %q", fields[0])
	}
	priority, err := model.ParsePriority(fields[2])
	if err != nil {
		return model.Task{}, err
	}
	checked, err := parseChecked(fields[3])
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:       uint32(id),
		Content:  fields[1],
		Priority: priority,
		Checked:  checked,
	}, nil
}

func isCSVHeader(fields []string) bool {
	for i, f := range fields {
		if strings.ToLower(strings.TrimSpace(f)) != csvHeader[i] {
			return false
		}
	}
	return true
}
