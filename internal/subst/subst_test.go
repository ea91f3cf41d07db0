package subst

import (
	"testing"

	"github.com/Hadron67/typechecker/internal/term"
)

func TestOneReplacesFreeOccurrences(t *testing.T) {
	x := term.Handle(1)
	replacement := term.Symbol{Handle: 99}
	in := term.Call{Fn: term.Symbol{Handle: x}, Args: []term.Term{term.Symbol{Handle: x}}}

	got := One(in, x, replacement)
	want := term.Call{Fn: replacement, Args: []term.Term{replacement}}
	if got.String() != want.String() {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestOneDoesNotCrossItsOwnBinder(t *testing.T) {
	x := term.Handle(1)
	replacement := term.Symbol{Handle: 99}
	// \x x — substituting for x must not touch the bound occurrence.
	lam := term.Lambda{Arg: x, Body: term.Symbol{Handle: x}}

	got := One(lam, x, replacement)
	if got.String() != lam.String() {
		t.Fatalf("substitution leaked into the lambda's own binder: got %s", got)
	}
}

func TestOneReturnsSameValueWhenNothingChanges(t *testing.T) {
	x := term.Handle(1)
	y := term.Handle(2)
	in := term.Symbol{Handle: y}
	got := One(in, x, term.Symbol{Handle: 99})
	if got != term.Term(in) {
		t.Fatalf("expected untouched term back, got %v", got)
	}
}

func TestManySubstitutesSimultaneously(t *testing.T) {
	a, b := term.Handle(1), term.Handle(2)
	in := term.Call{Fn: term.Symbol{Handle: a}, Args: []term.Term{term.Symbol{Handle: b}}}
	// Swap a and b at once — sequential substitution would get this wrong.
	subs := map[term.Handle]term.Term{a: term.Symbol{Handle: b}, b: term.Symbol{Handle: a}}

	got := Many(in, subs)
	want := term.Call{Fn: term.Symbol{Handle: b}, Args: []term.Term{term.Symbol{Handle: a}}}
	if got.String() != want.String() {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestSubstitutionUnderDependentFnTypeMasksTheArg(t *testing.T) {
	x := term.Handle(1)
	pi := term.FnType{
		InputType:  term.Symbol{Handle: 2},
		OutputType: term.Symbol{Handle: x},
		Arg:        x,
		HasArg:     true,
	}
	got := One(pi, x, term.Symbol{Handle: 99})
	gotPi := got.(term.FnType)
	if gotPi.OutputType.String() != (term.Symbol{Handle: x}).String() {
		t.Fatalf("substitution should not reach the dependent arg's own binder, got %s", gotPi.OutputType)
	}
}
