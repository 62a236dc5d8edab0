// Package output renders answers for the terminal.
//
// Supported formats:
//   - text: an aligned table, or a hint when nothing matched
//   - csv:  header row plus one record per row
//   - json: an array of objects, keys in column order
//   - yaml: a sequence of mappings, keys in column order
package output

import (
	"fmt"
	"io"

	"github.com/razeghi71/ask/engine"
)

// NoMatchMessage is printed by the text formatter for empty answers.
const NoMatchMessage = "No matching data found. Try a different query!"

// Formatter writes answers in one output format.
type Formatter interface {
	// Format writes the result table
	Format(r *engine.Result) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter for format.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
