package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/razeghi71/ask/table"
)

func loadParquet(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", filename, err)
	}

	pqFile, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("cannot read Parquet from %s: %w", filename, err)
	}

	// Top-level fields in schema order become the columns.
	var fields []string
	for _, field := range pqFile.Schema().Fields() {
		fields = append(fields, field.Name())
	}

	t := table.NewTable(NormalizeHeaders(fields))

	reader := parquet.NewReader(f)
	defer reader.Close()

	for {
		row := make(map[string]interface{})
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error reading Parquet row: %w", err)
		}

		vals := make([]table.Value, len(fields))
		for i, field := range fields {
			vals[i] = nativeValue(row[field])
		}
		t.AddRow(vals)
	}

	return t, nil
}
