package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Token is a single normalized word of a question.
type Token struct {
	Val string
	Pos int // rune offset in Query.Clean
}

func (t Token) String() string {
	return fmt.Sprintf("%q@%d", t.Val, t.Pos)
}

// Query is a question after normalization.
type Query struct {
	Raw    string
	Clean  string // lowercased, apostrophes dropped, other punctuation blanked
	Tokens []Token
}

// Words returns the token values in order.
func (q *Query) Words() []string {
	words := make([]string, len(q.Tokens))
	for i, tok := range q.Tokens {
		words[i] = tok.Val
	}
	return words
}

// Empty reports whether the question has no words.
func (q *Query) Empty() bool {
	return len(q.Tokens) == 0
}

// Fold lowercases s with Unicode-aware case mapping. Column names and cell
// values are folded the same way as questions before they are compared.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Normalize lowercases the input, drops apostrophes, turns every other rune
// that is not a letter, digit or whitespace into a space, and splits the
// result on whitespace. "bilal-khan" yields two words, "zara's" one.
func Normalize(input string) *Query {
	var sb strings.Builder
	for _, ch := range Fold(input) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsDigit(ch) || unicode.IsSpace(ch):
			sb.WriteRune(ch)
		case isApostrophe(ch):
		default:
			sb.WriteByte(' ')
		}
	}
	clean := sb.String()

	return &Query{
		Raw:    input,
		Clean:  clean,
		Tokens: split(clean),
	}
}

func isApostrophe(ch rune) bool {
	switch ch {
	case '\'', '\u2019', '\u02bc', '`':
		return true
	}
	return false
}

func split(clean string) []Token {
	var tokens []Token
	runes := []rune(clean)
	i := 0

	for i < len(runes) {
		// Skip whitespace
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, Token{Val: string(runes[start:i]), Pos: start})
	}

	return tokens
}
