package loader

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/razeghi71/ask/table"
)

// Load reads a file and returns a Table. SQLite files may name a table
// with a fragment: "people.db#staff". A "#" anywhere else is part of the
// file name.
func Load(filename string) (*table.Table, error) {
	path, fragment := filename, ""
	if i := strings.LastIndex(filename, "#"); i >= 0 && isSQLite(strings.ToLower(filepath.Ext(filename[:i]))) {
		path, fragment = filename[:i], filename[i+1:]
	}

	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	case ".jsonl":
		return loadJSONL(path)
	case ".avro":
		return loadAvro(path)
	case ".parquet":
		return loadParquet(path)
	case ".xlsx":
		return loadXLSX(path)
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(path, fragment)
	default:
		return nil, fmt.Errorf("unsupported file format %q (supported: .csv, .json, .jsonl, .avro, .parquet, .xlsx, .db, .sqlite, .sqlite3)", ext)
	}
}

func isSQLite(ext string) bool {
	return ext == ".db" || ext == ".sqlite" || ext == ".sqlite3"
}

func loadCSV(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	return readCSV(f, filename)
}

func readCSV(r io.Reader, filename string) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header from %s: %w", filename, err)
	}

	t := table.NewTable(NormalizeHeaders(header))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}
		t.AddRow(parseRecord(record, len(t.Columns)))
	}

	return t, nil
}

func parseRecord(record []string, width int) []table.Value {
	vals := make([]table.Value, width)
	for i := range vals {
		if i < len(record) {
			vals[i] = parseValue(strings.TrimSpace(record[i]))
		} else {
			vals[i] = table.Null()
		}
	}
	return vals
}

// parseValue infers the type of a text cell value.
func parseValue(s string) table.Value {
	if s == "" || strings.EqualFold(s, "null") {
		return table.Null()
	}

	// Leading zeros mark codes and phone numbers, not quantities.
	if len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9' {
		return table.StrVal(s)
	}

	// Try integer
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.IntVal(v)
	}

	// Try float
	// ParseFloat also accepts NaN and Inf, which are words here.
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return table.FloatVal(v)
	}

	// Try boolean
	lower := strings.ToLower(s)
	if lower == "true" {
		return table.BoolVal(true)
	}
	if lower == "false" {
		return table.BoolVal(false)
	}

	return table.StrVal(s)
}

// record is a JSON object with its keys in document order.
type record struct {
	keys []string
	vals map[string]interface{}
}

func loadJSON(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("cannot parse JSON from %s: %w (expected array of objects)", filename, err)
	}
	var records []record
	for dec.More() {
		rec, err := decodeRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("cannot parse JSON from %s: record %d: %w", filename, len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, fmt.Errorf("cannot parse JSON from %s: %w", filename, err)
	}

	return buildTableFromRecords(records), nil
}

func loadJSONL(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var records []record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		rec, err := decodeRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	return buildTableFromRecords(records), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// decodeRecord reads one JSON object, keeping key order so columns come out
// in the order the file declares them.
func decodeRecord(dec *json.Decoder) (record, error) {
	rec := record{vals: make(map[string]interface{})}
	if err := expectDelim(dec, '{'); err != nil {
		return rec, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		key, ok := tok.(string)
		if !ok {
			return rec, fmt.Errorf("expected object key, got %v", tok)
		}
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return rec, err
		}
		if _, dup := rec.vals[key]; !dup {
			rec.keys = append(rec.keys, key)
		}
		rec.vals[key] = v
	}
	return rec, expectDelim(dec, '}')
}

func buildTableFromRecords(records []record) *table.Table {
	if len(records) == 0 {
		return table.NewTable(nil)
	}

	colSet := make(map[string]bool)
	var keys []string
	for _, rec := range records {
		for _, k := range rec.keys {
			if !colSet[k] {
				colSet[k] = true
				keys = append(keys, k)
			}
		}
	}

	t := table.NewTable(NormalizeHeaders(keys))
	for _, rec := range records {
		vals := make([]table.Value, len(keys))
		for i, key := range keys {
			v, ok := rec.vals[key]
			if !ok || v == nil {
				vals[i] = table.Null()
				continue
			}
			vals[i] = jsonValue(v)
		}
		t.AddRow(vals)
	}

	return t
}

func jsonValue(v interface{}) table.Value {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return table.IntVal(i)
		}
		if f, err := val.Float64(); err == nil {
			return table.FloatVal(f)
		}
		return table.StrVal(val.String())
	case string:
		return table.StrVal(val)
	case bool:
		return table.BoolVal(val)
	case nil:
		return table.Null()
	default:
		// For nested objects/arrays, just stringify
		b, _ := json.Marshal(val)
		return table.StrVal(string(b))
	}
}

// nativeValue converts a decoded Go value from a binary format (Avro,
// Parquet, SQLite) into a table value.
func nativeValue(v interface{}) table.Value {
	if v == nil {
		return table.Null()
	}
	switch val := v.(type) {
	case int:
		return table.IntVal(int64(val))
	case int32:
		return table.IntVal(int64(val))
	case int64:
		return table.IntVal(val)
	case float32:
		return table.FloatVal(float64(val))
	case float64:
		return table.FloatVal(val)
	case string:
		return table.StrVal(val)
	case bool:
		return table.BoolVal(val)
	case []byte:
		return table.StrVal(string(val))
	case map[string]interface{}:
		// Avro unions decode as {"type": value} - extract the value
		for _, inner := range val {
			return nativeValue(inner)
		}
		return table.Null()
	default:
		return table.StrVal(fmt.Sprintf("%v", val))
	}
}
