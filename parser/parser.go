package parser

import (
	"strings"

	"github.com/razeghi71/ask/ast"
	"github.com/razeghi71/ask/lexer"
)

// fillers are connective words that never identify a row. They are left out
// of the identifier terms so "salary of bilal khan" narrows on "bilal khan".
// Whole-row search still uses them.
var fillers = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "for": true, "is": true,
	"what": true, "whats": true, "who": true, "whose": true, "show": true,
	"me": true, "give": true, "tell": true, "find": true, "get": true,
	"please": true, "about": true, "details": true, "number": true,
}

// Parse normalizes a question and plans it against the given columns.
func Parse(input string, columns []string) *ast.Plan {
	return Plan(lexer.Normalize(input), columns)
}

// Plan detects the target column of q and splits its words into the terms
// used by the two matching stages. Identifier terms are the words that are
// neither inside the target column name nor fillers.
//
// A column is a candidate when its lowercased name occurs anywhere in the
// normalized question, so multi-word names like "Contact Number" match
// without token alignment. The first candidate in declared order wins.
func Plan(q *lexer.Query, columns []string) *ast.Plan {
	plan := &ast.Plan{
		Query:       q.Clean,
		SearchTerms: q.Words(),
	}

	var targetFolded string
	for _, col := range columns {
		folded := lexer.Fold(col)
		if !strings.Contains(q.Clean, folded) {
			continue
		}
		if plan.Target == "" {
			plan.Target = col
			targetFolded = folded
		}
		plan.Candidates = append(plan.Candidates, col)
	}

	if !plan.HasTarget() {
		return plan
	}

	// Any word found inside the column name is dropped, even a partial one:
	// "a" is stripped for "Salary". This can remove short words that were
	// meant to match the identifier.
	for _, word := range plan.SearchTerms {
		if strings.Contains(targetFolded, word) || fillers[word] {
			continue
		}
		plan.IdentifierTerms = append(plan.IdentifierTerms, word)
	}

	return plan
}
