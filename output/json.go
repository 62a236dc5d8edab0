package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/razeghi71/ask/engine"
)

// JSONFormatter outputs results as a JSON array of objects whose keys keep
// the column order.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the rows as a single JSON array followed by a newline.
func (j *JSONFormatter) Format(r *engine.Result) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range r.Table.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for c, col := range r.Table.Columns {
			if c > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return fmt.Errorf("failed to marshal column name: %w", err)
			}
			val, err := json.Marshal(row.Values[c].Native())
			if err != nil {
				return fmt.Errorf("failed to marshal value of %s: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]\n")

	_, err := j.writer.Write(buf.Bytes())
	return err
}
