package lexer

import (
	"reflect"
	"testing"
)

func TestNormalizeBasic(t *testing.T) {
	q := Normalize("Salary of Bilal Khan")
	if q.Clean != "salary of bilal khan" {
		t.Errorf("clean: expected %q, got %q", "salary of bilal khan", q.Clean)
	}
	expected := []string{"salary", "of", "bilal", "khan"}
	if !reflect.DeepEqual(q.Words(), expected) {
		t.Errorf("expected %v, got %v", expected, q.Words())
	}
}

func TestNormalizePunctuation(t *testing.T) {
	q := Normalize("salary, of bilal-khan?")
	expected := []string{"salary", "of", "bilal", "khan"}
	if !reflect.DeepEqual(q.Words(), expected) {
		t.Errorf("expected %v, got %v", expected, q.Words())
	}
	if q.Clean != "salary  of bilal khan " {
		t.Errorf("clean: got %q", q.Clean)
	}
}

func TestNormalizeApostrophe(t *testing.T) {
	for _, in := range []string{"Ali's salary", "Ali\u2019s salary", "Ali`s  salary"} {
		q := Normalize(in)
		expected := []string{"alis", "salary"}
		if !reflect.DeepEqual(q.Words(), expected) {
			t.Errorf("%q: expected %v, got %v", in, expected, q.Words())
		}
	}
}

func TestNormalizeUnderscoreIsPunctuation(t *testing.T) {
	q := Normalize("first_name")
	if q.Clean != "first name" {
		t.Errorf("expected underscore blanked, got %q", q.Clean)
	}
}

func TestNormalizeKeepsWhitespaceInClean(t *testing.T) {
	q := Normalize("  Contact\tNumber  ")
	if q.Clean != "  contact\tnumber  " {
		t.Errorf("clean: got %q", q.Clean)
	}
	if len(q.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(q.Tokens))
	}
	if q.Tokens[0].Pos != 2 || q.Tokens[1].Pos != 10 {
		t.Errorf("unexpected positions: %v", q.Tokens)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "?!.,"} {
		if q := Normalize(in); !q.Empty() {
			t.Errorf("%q: expected no tokens, got %v", in, q.Tokens)
		}
	}
}

func TestNormalizeUnicode(t *testing.T) {
	q := Normalize("ÇAĞRI Öztürk!")
	expected := []string{"çağri", "öztürk"}
	if !reflect.DeepEqual(q.Words(), expected) {
		t.Errorf("expected %v, got %v", expected, q.Words())
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Contact Number"); got != "contact number" {
		t.Errorf("got %q", got)
	}
}
