package engine

import (
	"reflect"
	"testing"

	"github.com/razeghi71/ask/parser"
	"github.com/razeghi71/ask/table"
)

func peopleDataset(t *testing.T) *table.Dataset {
	t.Helper()
	tbl := table.NewTable([]string{"Name", "Salary", "Contact", "State"})
	tbl.AddRow([]table.Value{table.StrVal("Bilal Khan"), table.IntVal(5000), table.StrVal("03001234567"), table.StrVal("Karachi")})
	tbl.AddRow([]table.Value{table.StrVal("Ali Raza"), table.IntVal(7000), table.StrVal("03007654321"), table.StrVal("Lahore")})
	tbl.AddRow([]table.Value{table.StrVal("Sara Ahmed"), table.IntVal(6000), table.StrVal("03009876543"), table.StrVal("Islamabad")})
	ds, err := table.NewDataset(tbl, "")
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return ds
}

func names(r *Result) []string {
	var out []string
	for _, row := range r.Table.Rows {
		out = append(out, row.Values[0].Str)
	}
	return out
}

func TestSalaryOfBilalKhan(t *testing.T) {
	result := Resolve(peopleDataset(t), "Salary of Bilal Khan")
	if result.Mode != ModeColumn {
		t.Fatalf("expected column mode, got %s", result.Mode)
	}
	if !reflect.DeepEqual(result.Table.Columns, []string{"Salary"}) {
		t.Fatalf("unexpected columns: %v", result.Table.Columns)
	}
	if len(result.Table.Rows) != 1 || result.Table.Rows[0].Values[0].Int != 5000 {
		t.Errorf("expected [5000], got %s", result.Table)
	}
}

func TestContactNumberOfAliRaza(t *testing.T) {
	result := Resolve(peopleDataset(t), "Contact number of Ali Raza")
	if result.Column != "Contact" {
		t.Fatalf("expected Contact, got %q (%s)", result.Column, result.Table)
	}
	if len(result.Table.Rows) != 1 || result.Table.Rows[0].Values[0].Str != "03007654321" {
		t.Errorf("expected [03007654321], got %s", result.Table)
	}
}

func TestNameOnlyReturnsFullRow(t *testing.T) {
	result := Resolve(peopleDataset(t), "Sara Ahmed")
	if result.Mode != ModeRow {
		t.Fatalf("expected row mode, got %s", result.Mode)
	}
	if len(result.Table.Columns) != 4 {
		t.Fatalf("expected all columns, got %v", result.Table.Columns)
	}
	if len(result.Table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Table.Rows))
	}
	row := result.Table.Rows[0].Values
	if row[0].Str != "Sara Ahmed" || row[1].Int != 6000 || row[2].Str != "03009876543" || row[3].Str != "Islamabad" {
		t.Errorf("unexpected row: %s", result.Table)
	}
}

func TestCellValueSearch(t *testing.T) {
	result := Resolve(peopleDataset(t), "Karachi")
	if !reflect.DeepEqual(names(result), []string{"Bilal Khan"}) {
		t.Errorf("expected Bilal Khan, got %v", names(result))
	}
}

func TestNoMatch(t *testing.T) {
	result := Resolve(peopleDataset(t), "Zzz nonexistent")
	if !result.Empty() {
		t.Fatalf("expected empty result, got %s", result.Table)
	}
	if len(result.Table.Rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(result.Table.Rows))
	}
}

func TestCaseAndPunctuationInsensitive(t *testing.T) {
	ds := peopleDataset(t)
	base := Resolve(ds, "Salary of Bilal Khan").Table.String()
	for _, q := range []string{"salary of bilal khan", "SALARY OF BILAL KHAN!", "salary, of bilal-khan?"} {
		if got := Resolve(ds, q).Table.String(); got != base {
			t.Errorf("%q: expected %s, got %s", q, base, got)
		}
	}
}

func TestIdempotent(t *testing.T) {
	ds := peopleDataset(t)
	a := Resolve(ds, "contact of sara")
	b := Resolve(ds, "contact of sara")
	if a.Table.String() != b.Table.String() || a.Mode != b.Mode {
		t.Errorf("results differ: %s vs %s", a.Table, b.Table)
	}
	if ds.Len() != 3 {
		t.Errorf("dataset modified")
	}
}

func TestApostropheJoinsWord(t *testing.T) {
	ds := peopleDataset(t)
	if result := Resolve(ds, "Zara's"); !result.Empty() {
		t.Errorf("expected no match for zaras, got %s", result.Table)
	}

	result := Resolve(ds, "Ali's salary")
	if got := result.Plan.IdentifierTerms; !reflect.DeepEqual(got, []string{"alis"}) {
		t.Errorf("expected identifier terms [alis], got %v", got)
	}
	if !result.Empty() {
		t.Errorf("expected no match, got %s", result.Table)
	}
}

func TestSearchLargeFloat(t *testing.T) {
	tbl := table.NewTable([]string{"Name", "Salary"})
	tbl.AddRow([]table.Value{table.StrVal("Omar Khan"), table.FloatVal(1500000.5)})
	ds, err := table.NewDataset(tbl, "")
	if err != nil {
		t.Fatal(err)
	}
	result := Resolve(ds, "1500000")
	if result.Mode != ModeRow || len(result.Table.Rows) != 1 {
		t.Fatalf("expected Omar's row, got %s (%s)", result.Table, result.Mode)
	}
	if got := result.Table.Rows[0].Values[1].AsString(); got != "1500000.5" {
		t.Errorf("expected 1500000.5, got %q", got)
	}
}

func TestColumnWithoutIdentifierReturnsAllRows(t *testing.T) {
	result := Resolve(peopleDataset(t), "salary")
	if result.Mode != ModeColumn {
		t.Fatalf("expected column mode, got %s", result.Mode)
	}
	if len(result.Table.Rows) != 3 {
		t.Errorf("expected 3 salaries, got %s", result.Table)
	}
}

func TestColumnWithUnknownIdentifierFallsBack(t *testing.T) {
	// No name contains "lahore", but the State cell does.
	result := Resolve(peopleDataset(t), "salary lahore")
	if result.Mode != ModeRow {
		t.Fatalf("expected row mode, got %s", result.Mode)
	}
	if !reflect.DeepEqual(names(result), []string{"Ali Raza"}) {
		t.Errorf("expected Ali Raza, got %v", names(result))
	}
}

func TestPartialIdentifier(t *testing.T) {
	// Every remaining word must be inside the identifier; "ra" matches Ali Raza and Sara Ahmed.
	result := Resolve(peopleDataset(t), "state ra")
	if result.Mode != ModeColumn {
		t.Fatalf("expected column mode, got %s", result.Mode)
	}
	if len(result.Table.Rows) != 2 {
		t.Errorf("expected 2 rows, got %s", result.Table)
	}
}

func TestRowSearchMatchesNumbers(t *testing.T) {
	result := Resolve(peopleDataset(t), "7000")
	if !reflect.DeepEqual(names(result), []string{"Ali Raza"}) {
		t.Errorf("expected Ali Raza, got %v", names(result))
	}
}

func TestRowSearchPreservesOrder(t *testing.T) {
	result := Resolve(peopleDataset(t), "ahmed khan")
	if !reflect.DeepEqual(names(result), []string{"Bilal Khan", "Sara Ahmed"}) {
		t.Errorf("unexpected order: %v", names(result))
	}
}

func TestFirstDeclaredColumnWins(t *testing.T) {
	tbl := table.NewTable([]string{"Name", "Pay", "Payroll"})
	tbl.AddRow([]table.Value{table.StrVal("Ali"), table.IntVal(1), table.IntVal(2)})
	ds, err := table.NewDataset(tbl, "")
	if err != nil {
		t.Fatal(err)
	}
	result := Resolve(ds, "payroll ali")
	if result.Plan.Target != "Pay" {
		t.Errorf("expected Pay, got %q", result.Plan.Target)
	}
	// "payroll" is not inside "pay", so it stays an identifier term, no name
	// matches and whole-row search takes over.
	if result.Mode != ModeRow {
		t.Errorf("expected row mode, got %s", result.Mode)
	}
}

func TestNullCellsDoNotMatchNullWord(t *testing.T) {
	tbl := table.NewTable([]string{"Name", "Email"})
	tbl.AddRow([]table.Value{table.StrVal("Ali"), table.Null()})
	ds, err := table.NewDataset(tbl, "")
	if err != nil {
		t.Fatal(err)
	}
	if result := Resolve(ds, "null"); !result.Empty() {
		t.Errorf("expected no match, got %s", result.Table)
	}
}

func TestEmptyDataset(t *testing.T) {
	ds, err := table.NewDataset(table.NewTable([]string{"Name", "Salary"}), "")
	if err != nil {
		t.Fatal(err)
	}
	if result := Resolve(ds, "salary of ali"); !result.Empty() {
		t.Errorf("expected empty result")
	}
}

func TestExecutePrebuiltPlan(t *testing.T) {
	ds := peopleDataset(t)
	plan := parser.Parse("state of ali raza", ds.Columns())
	result := Execute(plan, ds)
	if result.Plan != plan {
		t.Errorf("result does not carry its plan")
	}
	if result.Table.Rows[0].Values[0].Str != "Lahore" {
		t.Errorf("expected Lahore, got %s", result.Table)
	}
}

func TestEmptyStringCellIsNotNoMatch(t *testing.T) {
	tbl := table.NewTable([]string{"Name", "Note"})
	tbl.AddRow([]table.Value{table.StrVal("Ali"), table.StrVal("")})
	ds, err := table.NewDataset(tbl, "")
	if err != nil {
		t.Fatal(err)
	}
	result := Resolve(ds, "note of ali")
	if result.Empty() {
		t.Fatalf("expected a match")
	}
	if result.Table.Rows[0].Values[0].Str != "" {
		t.Errorf("expected empty note, got %s", result.Table)
	}
}
