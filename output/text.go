package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/razeghi71/ask/engine"
	"github.com/razeghi71/ask/table"
)

// TextFormatter prints results as an aligned table.
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TextFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format writes the result table, or NoMatchMessage when it is empty.
func (f *TextFormatter) Format(r *engine.Result) error {
	if r.Empty() {
		_, err := fmt.Fprintln(f.writer, NoMatchMessage)
		return err
	}
	return printTable(f.writer, r.Table)
}

// Preview prints the first n rows of t followed by a row count.
func Preview(w io.Writer, t *table.Table, n int) error {
	if err := printTable(w, t.Head(n)); err != nil {
		return err
	}
	shown := n
	if shown > len(t.Rows) {
		shown = len(t.Rows)
	}
	_, err := fmt.Fprintf(w, "(%d of %d rows)\n", shown, len(t.Rows))
	return err
}

func printTable(w io.Writer, t *table.Table) error {
	if len(t.Columns) == 0 {
		return nil
	}

	// Calculate column widths
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = runewidth.StringWidth(col)
	}

	// Format all cell values
	cells := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = make([]string, len(t.Columns))
		for j := range t.Columns {
			if j < len(row.Values) {
				cells[i][j] = row.Values[j].AsString()
			} else {
				cells[i][j] = "null"
			}
			if cw := runewidth.StringWidth(cells[i][j]); cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	var sb strings.Builder

	// Header
	headerParts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headerParts[i] = runewidth.FillRight(col, widths[i])
	}
	sb.WriteString(strings.TrimRight(strings.Join(headerParts, " | "), " "))
	sb.WriteString("\n")

	// Separator
	sepParts := make([]string, len(t.Columns))
	for i := range t.Columns {
		sepParts[i] = strings.Repeat("-", widths[i])
	}
	sb.WriteString(strings.Join(sepParts, "-+-"))
	sb.WriteString("\n")

	// Rows
	for _, row := range cells {
		parts := make([]string, len(t.Columns))
		for i := range t.Columns {
			parts[i] = runewidth.FillRight(row[i], widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, " | "), " "))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
