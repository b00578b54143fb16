package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/postit-dev/postit/internal/model"
	"golang.org/x/term"
)

// ANSI escape codes
const (
	codeReset         = "\033[0m"
	codeStrikethrough = "\033[9m"
	codeRed           = "\033[31m"
	codeGreen         = "\033[32m"
	codeYellow        = "\033[33m"
	codeBlue          = "\033[34m"
	codeGray          = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	// Disable colors if stdout is not a terminal or NO_COLOR is set
	colorEnabled = IsTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func style(code, s string) string {
	if !colorEnabled || s == "" {
		return s
	}
	return code + s + codeReset
}

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return style(codeRed, s) }

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return style(codeGreen, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return style(codeYellow, s) }

// Blue returns s wrapped in blue ANSI codes if colors are enabled.
func Blue(s string) string { return style(codeBlue, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return style(codeGray, s) }

// Strikethrough returns s crossed out if colors are enabled.
func Strikethrough(s string) string { return style(codeStrikethrough, s) }

// PriorityColor colors s the way tasks of priority p are shown.
func PriorityColor(p model.Priority, s string) string {
	switch p {
	case model.PriorityHigh:
		return Red(s)
	case model.PriorityMed:
		return Yellow(s)
	case model.PriorityLow:
		return Blue(s)
	}
	return s
}

// DefaultMaxContentWidth is the maximum visible width of the content column.
const DefaultMaxContentWidth = 80

// RenderTasks writes l as a table of id, priority and content. Checked tasks
// are struck through when colors are enabled and marked with an "x" column.
func RenderTasks(w io.Writer, l *model.TaskList) {
	if l.IsEmpty() {
		fmt.Fprintln(w, Gray("No tasks"))
		return
	}

	table := NewTable()
	table.SetMaxWidth(3, DefaultMaxContentWidth)
	for _, task := range l.Tasks {
		mark := " "
		if task.Checked {
			mark = "x"
		}
		content := strings.ReplaceAll(task.Content, "\n", " ")
		if task.Checked {
			content = Strikethrough(content)
		}
		table.AddRow(
			fmt.Sprintf("%d", task.ID),
			PriorityColor(task.Priority, task.Priority.String()),
			mark,
			PriorityColor(task.Priority, content),
		)
	}
	table.Render(w)
}

// RenderEditResult writes a summary of a batch edit. verb is the past tense
// of the operation, e.g. "Checked".
func RenderEditResult(w io.Writer, verb string, r model.EditResult, skippedHint string) {
	if len(r.Changed) > 0 {
		fmt.Fprintln(w, Green(verb+": "+model.FormatIDs(r.Changed)))
	}
	if len(r.Unchanged) > 0 {
		fmt.Fprintf(w, "%s\n", Gray("Unchanged: "+model.FormatIDs(r.Unchanged)))
	}
	if len(r.Skipped) > 0 {
		line := "Skipped: " + model.FormatIDs(r.Skipped)
		if skippedHint != "" {
			line += " (" + skippedHint + ")"
		}
		fmt.Fprintln(w, Yellow(line))
	}
	if len(r.NotFound) > 0 {
		fmt.Fprintln(w, Yellow("Not found: "+model.FormatIDs(r.NotFound)))
	}
}

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		width := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}
	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, 0, len(row))
		for i, col := range row {
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			// The last column is not padded
			if i < len(t.colWidths)-1 {
				col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
			}
			parts = append(parts, col)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// Truncate returns s cut to maxWidth visible characters, ending in "..."
// when it was shortened. ANSI escape codes are kept and a reset is appended
// if any were present.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	ellipsis := "..."
	limit := maxWidth - len(ellipsis)
	if limit < 0 {
		limit, ellipsis = maxWidth, ""
	}

	var b strings.Builder
	visible := 0
	inEscape, hasANSI := false, false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape, hasANSI = true, true
			b.WriteRune(r)
		case inEscape:
			b.WriteRune(r)
			inEscape = r != 'm'
		case visible < limit:
			b.WriteRune(r)
			visible++
		}
	}

	b.WriteString(ellipsis)
	if hasANSI {
		b.WriteString(codeReset)
	}
	return b.String()
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			inEscape = r != 'm'
		default:
			width++
		}
	}
	return width
}
