// Package matcher implements the pattern matcher (§4.3): matching a term
// against a pattern term modulo bound-variable alpha-renaming, producing a
// mapping from pattern variables to subterms or a failure.
package matcher

import (
	"github.com/Hadron67/typechecker/internal/subst"
	"github.com/Hadron67/typechecker/internal/term"
)

// Bindings maps pattern-variable handles to the subterms they matched.
type Bindings map[term.Handle]term.Term

// Match attempts to match subject against pattern, returning the resulting
// bindings. ok is false on any structural mismatch.
func Match(pattern, subject term.Term) (Bindings, bool) {
	b := Bindings{}
	if match(pattern, subject, b) {
		return b, true
	}
	return nil, false
}

func match(pattern, subject term.Term, b Bindings) bool {
	switch p := pattern.(type) {
	case term.Pattern:
		if !p.HasVariable {
			return true
		}
		if prev, bound := b[p.Variable]; bound {
			// Re-occurrence of the same pattern variable: the new subject
			// must match whatever it was already bound to.
			return match(prev, subject, b)
		}
		b[p.Variable] = subject
		return true

	case term.Symbol:
		s, ok := subject.(term.Symbol)
		return ok && s.Handle == p.Handle

	case term.Call:
		s, ok := subject.(term.Call)
		if !ok || len(s.Args) != len(p.Args) {
			return false
		}
		if !match(p.Fn, s.Fn, b) {
			return false
		}
		for i := range p.Args {
			if !match(p.Args[i], s.Args[i], b) {
				return false
			}
		}
		return true

	case term.Lambda:
		s, ok := subject.(term.Lambda)
		if !ok {
			return false
		}
		return match(p.Body, subst.One(s.Body, s.Arg, term.Symbol{Handle: p.Arg}), b)

	case term.FnType:
		s, ok := subject.(term.FnType)
		if !ok || s.HasArg != p.HasArg {
			return false
		}
		if !match(p.InputType, s.InputType, b) {
			return false
		}
		sOut := s.OutputType
		if p.HasArg {
			sOut = subst.One(s.OutputType, s.Arg, term.Symbol{Handle: p.Arg})
		}
		return match(p.OutputType, sOut, b)

	case term.Universe:
		s, ok := subject.(term.Universe)
		return ok && match(p.Subscript, s.Subscript, b)

	case term.LevelType:
		_, ok := subject.(term.LevelType)
		return ok

	case term.LevelSucc:
		switch s := subject.(type) {
		case term.LevelSucc:
			return match(p.Expr, s.Expr, b)
		case term.Level:
			if s.Value == 0 {
				return false
			}
			return match(p.Expr, term.Level{Value: s.Value - 1}, b)
		default:
			return false
		}

	case term.LevelMax:
		s, ok := subject.(term.LevelMax)
		return ok && match(p.Lhs, s.Lhs, b) && match(p.Rhs, s.Rhs, b)

	case term.Level:
		s, ok := subject.(term.Level)
		return ok && s.Value == p.Value

	case term.Placeholder:
		_, ok := subject.(term.Placeholder)
		return ok

	default:
		return false
	}
}
