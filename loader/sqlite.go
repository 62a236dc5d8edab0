package loader

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/razeghi71/ask/table"
	_ "modernc.org/sqlite"
)

// loadSQLite reads one table of a SQLite database. Without a table name the
// first user table in name order is used.
func loadSQLite(filename, tableName string) (*table.Table, error) {
	db, err := sql.Open("sqlite", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer db.Close()

	if tableName == "" {
		err := db.QueryRow(`SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name LIMIT 1`).Scan(&tableName)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no tables found in %s", filename)
		}
		if err != nil {
			return nil, fmt.Errorf("cannot list tables in %s: %w", filename, err)
		}
	}

	rows, err := db.Query("SELECT * FROM " + quoteIdent(tableName))
	if err != nil {
		return nil, fmt.Errorf("cannot read table %q from %s: %w", tableName, filename, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("cannot read columns of %q: %w", tableName, err)
	}

	t := table.NewTable(NormalizeHeaders(cols))
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("error reading row of %q: %w", tableName, err)
		}

		vals := make([]table.Value, len(cols))
		for i, v := range raw {
			vals[i] = nativeValue(v)
		}
		t.AddRow(vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading table %q: %w", tableName, err)
	}

	return t, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
