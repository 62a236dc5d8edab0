package engine

import (
	"strings"

	"github.com/razeghi71/ask/ast"
	"github.com/razeghi71/ask/lexer"
	"github.com/razeghi71/ask/parser"
	"github.com/razeghi71/ask/table"
)

// Mode tells how a result was produced.
type Mode int

const (
	ModeNone   Mode = iota // nothing matched
	ModeColumn             // one column of the rows matching the identifier
	ModeRow                // whole rows containing a search term
)

func (m Mode) String() string {
	switch m {
	case ModeColumn:
		return "column"
	case ModeRow:
		return "row"
	default:
		return "none"
	}
}

// Result is the answer to a question: a sub-table of the dataset.
type Result struct {
	Table  *table.Table
	Mode   Mode
	Column string // target column when Mode is ModeColumn
	Plan   *ast.Plan
}

// Empty reports whether nothing matched. This is distinct from a result
// whose cells happen to be empty strings.
func (r *Result) Empty() bool {
	return r.Mode == ModeNone
}

// Resolve answers a free-text question against ds. It never fails: a
// question that matches nothing yields an Empty result.
//
// Callers should not pass an empty or whitespace-only question.
func Resolve(ds *table.Dataset, question string) *Result {
	return Execute(parser.Parse(question, ds.Columns()), ds)
}

// Execute runs a plan against ds.
func Execute(plan *ast.Plan, ds *table.Dataset) *Result {
	if plan.HasTarget() {
		if res := lookupColumn(plan, ds); res != nil {
			return res
		}
	}
	return searchRows(plan, ds)
}

// lookupColumn keeps rows whose identifier contains every identifier term
// and projects them onto the target column. It returns nil when no row
// matched.
func lookupColumn(plan *ast.Plan, ds *table.Dataset) *Result {
	matched := ds.Table().Filter(func(r table.Row) bool {
		ident := lexer.Fold(ds.IdentifierValue(r).Text())
		return containsAll(ident, plan.IdentifierTerms)
	})
	if len(matched.Rows) == 0 {
		return nil
	}

	projected, err := matched.Project(plan.Target)
	if err != nil {
		// Target always comes from ds.Columns().
		return nil
	}
	return &Result{Table: projected, Mode: ModeColumn, Column: plan.Target, Plan: plan}
}

// searchRows keeps whole rows where any cell contains any search term.
func searchRows(plan *ast.Plan, ds *table.Dataset) *Result {
	matched := ds.Table().Filter(func(r table.Row) bool {
		for _, v := range r.Values {
			if containsAny(lexer.Fold(v.Text()), plan.SearchTerms) {
				return true
			}
		}
		return false
	})

	mode := ModeRow
	if len(matched.Rows) == 0 {
		mode = ModeNone
	}
	return &Result{Table: matched, Mode: mode, Plan: plan}
}

func containsAll(s string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
