package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoColumns         = errors.New("dataset has no columns")
	ErrDuplicateColumn   = errors.New("duplicate column name")
	ErrUnknownIdentifier = errors.New("identifier column not found")
)

// Dataset is an immutable table with a designated identifier column: the
// column holding each row's human-readable label (a person's name, a
// product title). Questions like "salary of bilal khan" are matched against
// it.
type Dataset struct {
	table *Table
	ident int
}

// NewDataset validates t and picks its identifier column. The table is
// copied, so later changes to t do not leak into the dataset.
//
// If identifier is empty, the first column named "name" (any case) is used,
// falling back to the first column.
func NewDataset(t *Table, identifier string) (*Dataset, error) {
	if t == nil || len(t.Columns) == 0 {
		return nil, ErrNoColumns
	}

	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		seen[c] = true
	}

	ident, err := identifierIndex(t.Columns, identifier)
	if err != nil {
		return nil, err
	}

	return &Dataset{table: t.Clone(), ident: ident}, nil
}

func identifierIndex(columns []string, identifier string) (int, error) {
	if identifier == "" {
		for i, c := range columns {
			if strings.EqualFold(c, "name") {
				return i, nil
			}
		}
		return 0, nil
	}

	for i, c := range columns {
		if c == identifier {
			return i, nil
		}
	}
	for i, c := range columns {
		if strings.EqualFold(c, identifier) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (columns: %s)", ErrUnknownIdentifier, identifier, strings.Join(columns, ", "))
}

// Columns returns a copy of the declared column names in order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.table.Columns...)
}

// Rows returns the dataset rows in order. Callers must not modify them.
func (d *Dataset) Rows() []Row {
	return d.table.Rows
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.table.Rows)
}

// Table returns the underlying table. Callers must not modify it.
func (d *Dataset) Table() *Table {
	return d.table
}

// Identifier returns the name of the identifier column.
func (d *Dataset) Identifier() string {
	return d.table.Columns[d.ident]
}

// IdentifierValue returns the identifier cell of r.
func (d *Dataset) IdentifierValue(r Row) Value {
	if d.ident >= len(r.Values) {
		return Null()
	}
	return r.Values[d.ident]
}
