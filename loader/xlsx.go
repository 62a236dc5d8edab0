package loader

import (
	"fmt"

	"github.com/razeghi71/ask/table"
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads the first sheet of a workbook. The first row is the header.
func loadXLSX(filename string) (*table.Table, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", filename)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q from %s: %w", sheets[0], filename, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows found in %s", filename)
	}

	t := table.NewTable(NormalizeHeaders(rows[0]))
	for _, row := range rows[1:] {
		// GetRows drops trailing empty cells; parseRecord pads them back.
		t.AddRow(parseRecord(row, len(t.Columns)))
	}

	return t, nil
}
