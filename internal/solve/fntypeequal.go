package solve

import (
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/expand"
	"github.com/Hadron67/typechecker/internal/subst"
	"github.com/Hadron67/typechecker/internal/term"
)

// evalFnTypeEqual implements the FN_TYPE_EQUAL constraint: c.Left must
// normalise to a Pi-type chain that consumes c.Args in order, with the
// final output equal to c.Right.
func (s *Solver) evalFnTypeEqual(c Constraint) evalResult {
	left, changed := expand.Expand(c.Left, s.scratch)

	switch v := left.(type) {
	case term.FnType:
		arg := c.Args[0]
		next := []Constraint{{Kind: KindType, Left: arg, Right: v.InputType, Span: c.Span}}
		output := v.OutputType
		if v.HasArg {
			output = subst.One(v.OutputType, v.Arg, arg)
		}
		rest := c.Args[1:]
		if len(rest) == 0 {
			next = append(next, Constraint{Kind: KindEqual, Left: output, Right: c.Right, Span: c.Span})
		} else {
			next = append(next, Constraint{Kind: KindFnTypeEqual, Left: output, Args: rest, Right: c.Right, Span: c.Span})
		}
		return resolved(next...)

	case term.Universe, term.LevelType, term.Level, term.LevelSucc, term.LevelMax, term.Lambda:
		s.diags.Addf(diag.CodeFnTypeExpected, c.Span, "%s is not a function type", left)
		return resolved()

	case term.Placeholder:
		return resolved()
	}

	if changed {
		return progressed(Constraint{Kind: KindFnTypeEqual, Left: left, Args: c.Args, Right: c.Right, Span: c.Span})
	}
	return unresolved(Constraint{Kind: KindFnTypeEqual, Left: left, Args: c.Args, Right: c.Right, Span: c.Span})
}
