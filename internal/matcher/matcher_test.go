package matcher

import (
	"testing"

	"github.com/Hadron67/typechecker/internal/term"
)

func TestMatchBindsPatternVariables(t *testing.T) {
	zero := term.Handle(100)
	pv := term.Handle(1)
	pattern := term.Call{
		Fn:   term.Symbol{Handle: 10}, // Nat.succ
		Args: []term.Term{term.Pattern{Variable: pv, HasVariable: true}},
	}
	subject := term.Call{
		Fn:   term.Symbol{Handle: 10},
		Args: []term.Term{term.Symbol{Handle: zero}},
	}

	b, ok := Match(pattern, subject)
	if !ok {
		t.Fatal("expected match to succeed")
	}
	if got, want := b[pv].String(), (term.Symbol{Handle: zero}).String(); got != want {
		t.Fatalf("want binding %s, got %s", want, got)
	}
}

func TestMatchFailsOnDifferentHeads(t *testing.T) {
	pattern := term.Call{Fn: term.Symbol{Handle: 10}, Args: []term.Term{term.Pattern{Variable: 1, HasVariable: true}}}
	subject := term.Call{Fn: term.Symbol{Handle: 11}, Args: []term.Term{term.Symbol{Handle: 5}}}

	if _, ok := Match(pattern, subject); ok {
		t.Fatal("expected match to fail on a different head symbol")
	}
}

func TestMatchFailsOnDifferentArity(t *testing.T) {
	pattern := term.Call{Fn: term.Symbol{Handle: 10}, Args: []term.Term{term.Pattern{Variable: 1, HasVariable: true}}}
	subject := term.Call{Fn: term.Symbol{Handle: 10}, Args: []term.Term{term.Symbol{Handle: 5}, term.Symbol{Handle: 6}}}

	if _, ok := Match(pattern, subject); ok {
		t.Fatal("expected match to fail on mismatched arity")
	}
}

func TestMatchRepeatedPatternVariableMustAgree(t *testing.T) {
	pv := term.Handle(1)
	// f(?x, ?x) should only match f(a, a), not f(a, b).
	pattern := term.Call{
		Fn:   term.Symbol{Handle: 10},
		Args: []term.Term{term.Pattern{Variable: pv, HasVariable: true}, term.Pattern{Variable: pv, HasVariable: true}},
	}
	same := term.Call{Fn: term.Symbol{Handle: 10}, Args: []term.Term{term.Symbol{Handle: 5}, term.Symbol{Handle: 5}}}
	diff := term.Call{Fn: term.Symbol{Handle: 10}, Args: []term.Term{term.Symbol{Handle: 5}, term.Symbol{Handle: 6}}}

	if _, ok := Match(pattern, same); !ok {
		t.Fatal("expected match against identical repeated subterms to succeed")
	}
	if _, ok := Match(pattern, diff); ok {
		t.Fatal("expected match against differing repeated subterms to fail")
	}
}

func TestMatchLambdaIsAlphaInvariant(t *testing.T) {
	patArg := term.Handle(1)
	subjArg := term.Handle(2)
	pattern := term.Lambda{Arg: patArg, Body: term.Symbol{Handle: patArg}}
	subject := term.Lambda{Arg: subjArg, Body: term.Symbol{Handle: subjArg}}

	if _, ok := Match(pattern, subject); !ok {
		t.Fatal("expected alpha-equivalent lambdas to match despite differing binder handles")
	}
}

func TestMatchUnnamedPatternMatchesAnythingWithoutBinding(t *testing.T) {
	pattern := term.Pattern{}
	b, ok := Match(pattern, term.Symbol{Handle: 42})
	if !ok || len(b) != 0 {
		t.Fatalf("want an empty-binding match, got bindings=%v ok=%v", b, ok)
	}
}
