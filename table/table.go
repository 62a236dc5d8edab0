package table

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType represents the type of a Value.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeBool
)

// Value is a dynamically-typed cell in a table.
type Value struct {
	Type  ValueType
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Null returns a null value.
func Null() Value {
	return Value{Type: TypeNull}
}

// IntVal creates an integer value.
func IntVal(v int64) Value {
	return Value{Type: TypeInt, Int: v}
}

// FloatVal creates a float value.
func FloatVal(v float64) Value {
	return Value{Type: TypeFloat, Float: v}
}

// StrVal creates a string value.
func StrVal(v string) Value {
	return Value{Type: TypeString, Str: v}
}

// BoolVal creates a boolean value.
func BoolVal(v bool) Value {
	return Value{Type: TypeBool, Bool: v}
}

// IsNull returns true if the value is null.
func (v Value) IsNull() bool {
	return v.Type == TypeNull
}

// AsString returns the display representation.
func (v Value) AsString() string {
	if v.Type == TypeNull {
		return "null"
	}
	return v.Text()
}

// Text returns the representation used for matching. Null is the empty
// string so that a missing cell never matches the word "null".
func (v Value) Text() string {
	switch v.Type {
	case TypeNull:
		return ""
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case TypeString:
		return v.Str
	case TypeBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return "?"
	}
}

// Native returns the value as a plain Go value for encoders (nil, int64,
// float64, string, bool).
func (v Value) Native() any {
	switch v.Type {
	case TypeInt:
		return v.Int
	case TypeFloat:
		return v.Float
	case TypeString:
		return v.Str
	case TypeBool:
		return v.Bool
	default:
		return nil
	}
}

// Row is a single row in a table, mapping column index to value.
type Row struct {
	Values []Value
}

// Table is the core data structure: columns + rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: columns,
		Rows:    nil,
	}
}

// ColIndex returns the index of a column by name, or -1.
func (t *Table) ColIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddRow appends a row to the table. Short rows are padded with nulls and
// long rows truncated so every row has one value per column.
func (t *Table) AddRow(values []Value) {
	if len(values) != len(t.Columns) {
		fixed := make([]Value, len(t.Columns))
		copy(fixed, values)
		values = fixed
	}
	t.Rows = append(t.Rows, Row{Values: values})
}

// Get returns the value at a given row and column name.
func (t *Table) Get(row int, col string) Value {
	idx := t.ColIndex(col)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return Null()
	}
	return t.Rows[row].Values[idx]
}

// Filter returns a table with the same columns holding only the rows for
// which keep returns true, in their original order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	result := NewTable(append([]string(nil), t.Columns...))
	for _, r := range t.Rows {
		if keep(r) {
			result.Rows = append(result.Rows, r)
		}
	}
	return result
}

// Project returns a table containing only the named columns.
func (t *Table) Project(cols ...string) (*Table, error) {
	indices := make([]int, len(cols))
	for i, c := range cols {
		idx := t.ColIndex(c)
		if idx < 0 {
			return nil, fmt.Errorf("column %q not found", c)
		}
		indices[i] = idx
	}

	result := NewTable(append([]string(nil), cols...))
	for _, r := range t.Rows {
		vals := make([]Value, len(indices))
		for i, idx := range indices {
			vals[i] = r.Values[idx]
		}
		result.AddRow(vals)
	}
	return result, nil
}

// Head returns a table with at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	result := NewTable(append([]string(nil), t.Columns...))
	result.Rows = append([]Row(nil), t.Rows[:n]...)
	return result
}

// Clone creates a deep copy of the table structure (shares Value data).
func (t *Table) Clone() *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		vals := make([]Value, len(r.Values))
		copy(vals, r.Values)
		rows[i] = Row{Values: vals}
	}
	return &Table{Columns: cols, Rows: rows}
}

// String returns a compact representation of the table.
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return "[" + strings.Join(t.Columns, ", ") + "] (0 rows)"
	}

	var sb strings.Builder
	sb.WriteString("[ ")
	for i, r := range t.Rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("{")
		for j, v := range r.Values {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.Columns[j])
			sb.WriteString(":")
			sb.WriteString(v.AsString())
		}
		sb.WriteString("}")
	}
	sb.WriteString(" ]")
	return sb.String()
}
