// Package solve implements the constraint solver (§4.5): an iterative
// worklist that evaluates typing and equality constraints, posts new
// constraints upon decomposition, and assigns unification variables (temp
// symbols) on the fly.
package solve

import (
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/term"
)

// Kind distinguishes the four constraint shapes of §4.5.
type Kind int

const (
	// KindType is `Left : Right` — Left has type Right.
	KindType Kind = iota
	// KindFn is `Left(Args...) : Right` — applying Left to Args yields
	// Right; used when Left's type isn't known yet, only its arity.
	KindFn
	// KindEqual is `Left == Right`, a unification constraint.
	KindEqual
	// KindFnTypeEqual is `Left, Args => Right` — Left must normalise to a
	// Pi chain consuming Args with output Right.
	KindFnTypeEqual
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "TYPE"
	case KindFn:
		return "FN"
	case KindEqual:
		return "EQUAL"
	case KindFnTypeEqual:
		return "FN_TYPE_EQUAL"
	default:
		return "UNKNOWN_CONSTRAINT"
	}
}

// Constraint is a single pending obligation. Like the teacher's
// analyzer.Constraint, one struct's fields are reused across the different
// Kind values rather than modeling each kind as its own type.
type Constraint struct {
	Kind Kind
	Left term.Term
	// Right is the type/result/RHS, depending on Kind.
	Right term.Term
	// Args holds the applied arguments for KindFn and KindFnTypeEqual.
	Args []term.Term
	Span diag.Span
}
