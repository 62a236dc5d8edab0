package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/razeghi71/ask/engine"
)

// CSVFormatter outputs results as CSV. Nulls are empty fields.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the header and rows. An empty result writes nothing.
func (c *CSVFormatter) Format(r *engine.Result) error {
	csvWriter := csv.NewWriter(c.writer)

	if !r.Empty() {
		if err := csvWriter.Write(r.Table.Columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		record := make([]string, len(r.Table.Columns))
		for _, row := range r.Table.Rows {
			for i, v := range row.Values {
				record[i] = v.Text()
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}
