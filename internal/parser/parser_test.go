package parser

import (
	"testing"

	"github.com/Hadron67/typechecker/internal/ast"
)

func parseOneDecl(t *testing.T, src string) *ast.Declaration {
	t.Helper()
	p := New(src)
	prog, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(prog.Declarations) != 1 {
		t.Fatalf("want 1 declaration, got %d", len(prog.Declarations))
	}
	return prog.Declarations[0]
}

func TestParseAssertDeclaration(t *testing.T) {
	d := parseOneDecl(t, "Nat.zero: Nat")
	if d.Kind != ast.DeclAssert {
		t.Fatalf("want DeclAssert, got %v", d.Kind)
	}
	ident, ok := d.LHS.(*ast.Ident)
	if !ok || len(ident.Parts) != 2 || ident.Parts[0] != "Nat" || ident.Parts[1] != "zero" {
		t.Fatalf("unexpected LHS: %#v", d.LHS)
	}
	if !d.HasType || d.HasValue {
		t.Fatalf("want type-only assertion, got HasType=%v HasValue=%v", d.HasType, d.HasValue)
	}
}

func TestParseTypedDefinitionWithValue(t *testing.T) {
	d := parseOneDecl(t, "Nat.double: Nat -> Nat = \\x x")
	if d.Kind != ast.DeclAssert || !d.HasType || !d.HasValue {
		t.Fatalf("unexpected declaration: %#v", d)
	}
	arrow, ok := d.Type.(*ast.Arrow)
	if !ok || arrow.Dependent {
		t.Fatalf("want non-dependent arrow type, got %#v", d.Type)
	}
	lam, ok := d.Value.(*ast.Lambda)
	if !ok || lam.Param != "x" {
		t.Fatalf("want lambda \\x x, got %#v", d.Value)
	}
}

func TestParseDependentArrow(t *testing.T) {
	d := parseOneDecl(t, "Nat.ind: (n: builtin.Level) -> Nat")
	arrow, ok := d.Type.(*ast.Arrow)
	if !ok || !arrow.Dependent || arrow.ParamName != "n" {
		t.Fatalf("want dependent arrow over n, got %#v", d.Type)
	}
}

func TestParseRewriteRule(t *testing.T) {
	d := parseOneDecl(t, "Nat.ind(?n, ?C) := c0")
	if d.Kind != ast.DeclRewriteRule {
		t.Fatalf("want DeclRewriteRule, got %v", d.Kind)
	}
	app, ok := d.LHS.(*ast.Apply)
	if !ok || len(app.Args) != 2 {
		t.Fatalf("want a 2-arg call LHS, got %#v", d.LHS)
	}
	if _, ok := app.Args[0].(*ast.PatternHole); !ok {
		t.Fatalf("want first arg to be a pattern hole, got %#v", app.Args[0])
	}
}

func TestParseEqualityCheck(t *testing.T) {
	d := parseOneDecl(t, "f(x) :=== g(y)")
	if d.Kind != ast.DeclEqualityCheck {
		t.Fatalf("want DeclEqualityCheck, got %v", d.Kind)
	}
}

func TestParseUniverseAndLevel(t *testing.T) {
	d := parseOneDecl(t, "Nat: type(0l)")
	u, ok := d.Type.(*ast.Universe)
	if !ok {
		t.Fatalf("want a Universe type, got %#v", d.Type)
	}
	lvl, ok := u.Subscript.(*ast.LevelLit)
	if !ok || lvl.Value != 0 {
		t.Fatalf("want level literal 0, got %#v", u.Subscript)
	}
}

func TestParseUnderscoreIsPlaceholder(t *testing.T) {
	d := parseOneDecl(t, "f: _")
	if _, ok := d.Type.(*ast.Placeholder); !ok {
		t.Fatalf("want Placeholder, got %#v", d.Type)
	}
}

func TestParseErrorRecoversAtNextDeclaration(t *testing.T) {
	p := New("f: \nok: type(0l)")
	prog, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatal("want a parse error on the malformed first line")
	}
	if len(prog.Declarations) != 1 || prog.Declarations[0].LHS.(*ast.Ident).Parts[0] != "ok" {
		t.Fatalf("want recovery to still parse the second declaration, got %#v", prog.Declarations)
	}
}
