package ast

import (
	"fmt"
	"strings"
)

// Plan describes how a question will be answered.
//
// When Target is set, rows are first narrowed to those whose identifier
// contains every IdentifierTerm and only the Target column is returned. If
// that finds nothing (or there is no Target) rows containing any SearchTerm
// in any cell are returned whole.
type Plan struct {
	Query string // normalized question text

	// Candidates are all columns whose name occurs in the question, in
	// declared order. Target is the first of them.
	Candidates []string
	Target     string

	IdentifierTerms []string
	SearchTerms     []string
}

// HasTarget reports whether the question names a column.
func (p *Plan) HasTarget() bool {
	return p.Target != ""
}

// String renders the plan for :explain output.
func (p *Plan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "query:      %q\n", p.Query)
	if p.HasTarget() {
		fmt.Fprintf(&sb, "column:     %s (candidates: %s)\n", p.Target, strings.Join(p.Candidates, ", "))
		fmt.Fprintf(&sb, "identifier: all of [%s]\n", strings.Join(p.IdentifierTerms, " "))
		sb.WriteString("fallback:   whole-row search\n")
	} else {
		sb.WriteString("column:     none\n")
	}
	fmt.Fprintf(&sb, "row search: any of [%s]", strings.Join(p.SearchTerms, " "))
	return sb.String()
}
