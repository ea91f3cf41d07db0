package lexer

import (
	"testing"

	"github.com/Hadron67/typechecker/internal/token"
)

func TestNextTokenCoversEveryDeclarationShape(t *testing.T) {
	input := `Nat.zero: Nat
Nat.ind(?n, ?C) := c0
f(x) :=== g(y)
\x type(0l)
_ ?y`

	want := []token.Type{
		token.IDENT, token.DOT, token.IDENT, token.COLON, token.IDENT, token.NEWLINE,
		token.IDENT, token.DOT, token.IDENT, token.LPAREN, token.QUESTION, token.IDENT, token.COMMA, token.QUESTION, token.IDENT, token.RPAREN, token.DEFRULE, token.IDENT, token.NEWLINE,
		token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.EQUALCHECK, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.NEWLINE,
		token.BACKSLASH, token.IDENT, token.KEYWORD_TYPE, token.LPAREN, token.LEVEL, token.RPAREN, token.NEWLINE,
		token.IDENT, token.QUESTION, token.IDENT, token.EOF,
	}

	l := New(input)
	for i, wantType := range want {
		got := l.NextToken()
		if got.Type != wantType {
			t.Fatalf("token %d: want %s, got %s (%q)", i, wantType, got.Type, got.Literal)
		}
	}
}

func TestUnderscoreLexesAsIdent(t *testing.T) {
	l := New("_")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "_" {
		t.Fatalf("want IDENT %q, got %s %q", "_", tok.Type, tok.Literal)
	}
}

func TestLevelLiteralRequiresLSuffix(t *testing.T) {
	l := New("42l")
	tok := l.NextToken()
	if tok.Type != token.LEVEL || tok.Literal != "42" {
		t.Fatalf("want LEVEL \"42\", got %s %q", tok.Type, tok.Literal)
	}
}

func TestBareNumberIsIllegal(t *testing.T) {
	l := New("42")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("want ILLEGAL for a bare number, got %s", tok.Type)
	}
}

func TestTripleEqualsColonIsEqualCheck(t *testing.T) {
	l := New(":===")
	tok := l.NextToken()
	if tok.Type != token.EQUALCHECK {
		t.Fatalf("want EQUALCHECK, got %s", tok.Type)
	}
}

func TestColonEqualsIsDefRule(t *testing.T) {
	l := New(":= x")
	tok := l.NextToken()
	if tok.Type != token.DEFRULE {
		t.Fatalf("want DEFRULE, got %s", tok.Type)
	}
}
