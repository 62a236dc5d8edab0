package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/razeghi71/ask/loader"
	"github.com/razeghi71/ask/output"
	"github.com/razeghi71/ask/session"
	"github.com/razeghi71/ask/table"
)

func newREPL(t *testing.T, opts Options) (*REPL, *bytes.Buffer) {
	t.Helper()
	ds, err := table.NewDataset(loader.Sample(), "")
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(ds, "sample", session.Options{})
	t.Cleanup(s.Close)

	var out bytes.Buffer
	r, err := New(s, &out, opts)
	if err != nil {
		t.Fatal(err)
	}
	return r, &out
}

func TestQuestion(t *testing.T) {
	r, out := newREPL(t, Options{})
	if r.Handle("Salary of Bilal Khan") {
		t.Fatal("question should not quit")
	}
	if got := out.String(); got != "Salary\n------\n5000\n" {
		t.Errorf("unexpected output: %q", got)
	}

	out.Reset()
	r.Handle("zzz nonexistent")
	if got := out.String(); got != output.NoMatchMessage+"\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestBlankAndExit(t *testing.T) {
	r, out := newREPL(t, Options{})
	if r.Handle("   ") || out.Len() != 0 {
		t.Errorf("blank line should be skipped, got %q", out.String())
	}
	for _, in := range []string{"exit", "quit", "  quit  "} {
		if !r.Handle(in) {
			t.Errorf("%q should quit", in)
		}
	}
}

func TestColumns(t *testing.T) {
	r, out := newREPL(t, Options{})
	r.Handle(":columns")
	want := "Name (identifier)\nSalary\nContact\nState\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestPreview(t *testing.T) {
	r, out := newREPL(t, Options{PreviewRows: 1})
	r.Handle(":preview")
	if !strings.HasSuffix(out.String(), "(1 of 3 rows)\n") {
		t.Errorf("unexpected preview:\n%s", out.String())
	}

	out.Reset()
	r.Handle(":preview 10")
	if !strings.HasSuffix(out.String(), "(3 of 3 rows)\n") {
		t.Errorf("unexpected preview:\n%s", out.String())
	}

	out.Reset()
	r.Handle(":preview many")
	if !strings.Contains(out.String(), "invalid row count") {
		t.Errorf("expected error, got %q", out.String())
	}
}

func TestFormat(t *testing.T) {
	r, out := newREPL(t, Options{})
	r.Handle(":format json")
	r.Handle("contact of sara")
	if got := out.String(); got != `[{"Contact":"03009876543"}]`+"\n" {
		t.Errorf("unexpected output: %q", got)
	}

	out.Reset()
	r.Handle(":format")
	if out.String() != "json\n" {
		t.Errorf("expected current format, got %q", out.String())
	}

	out.Reset()
	r.Handle(":format xml")
	if !strings.HasPrefix(out.String(), "error:") {
		t.Errorf("expected error, got %q", out.String())
	}
	out.Reset()
	r.Handle(":format")
	if out.String() != "json\n" {
		t.Errorf("failed :format changed the format to %q", out.String())
	}
}

func TestLoad(t *testing.T) {
	r, out := newREPL(t, Options{})

	r.Handle(":load " + filepath.Join(t.TempDir(), "missing.csv"))
	if !strings.HasPrefix(out.String(), "load error:") {
		t.Errorf("expected load error, got %q", out.String())
	}
	if r.session.Source() != "sample" {
		t.Errorf("failed load replaced the dataset")
	}

	path := filepath.Join(t.TempDir(), "staff.csv")
	if err := os.WriteFile(path, []byte("Employee,Age\nNadia Shah,31\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	r.Handle(":load " + path)
	if !strings.Contains(out.String(), "1 rows, columns: Employee, Age") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	r.Handle("age of nadia")
	if out.String() != "Age\n---\n31\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestExplain(t *testing.T) {
	r, out := newREPL(t, Options{})
	r.Handle(":explain salary of bilal")
	got := out.String()
	if !strings.Contains(got, "column:     Salary") || !strings.Contains(got, "identifier: all of [bilal]") {
		t.Errorf("unexpected plan:\n%s", got)
	}

	out.Reset()
	r.Handle(":explain")
	if !strings.HasPrefix(out.String(), "usage:") {
		t.Errorf("expected usage, got %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	r, out := newREPL(t, Options{})
	r.Handle(":frobnicate now")
	if !strings.HasPrefix(out.String(), "Unknown command: :frobnicate") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestComplete(t *testing.T) {
	r, _ := newREPL(t, Options{})
	tests := []struct {
		line string
		want []string
	}{
		{"sal", []string{"Salary"}},
		{"contact of b", nil},
		{"what is the s", []string{"what is the Salary", "what is the State"}},
		{":pr", []string{":preview"}},
		{":explain st", []string{":explain State"}},
		{"salary ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := r.Complete(tt.line)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Complete(%q): expected %v, got %v", tt.line, tt.want, got)
		}
	}
}
