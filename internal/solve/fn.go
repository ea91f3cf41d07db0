package solve

import (
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/subst"
	"github.com/Hadron67/typechecker/internal/term"
)

// evalFn implements the FN constraint: "applying c.Left to c.Args yields
// c.Right", used when only the callee's arity (not yet its full type) is
// known.
func (s *Solver) evalFn(c Constraint) evalResult {
	switch v := c.Left.(type) {
	case term.Lambda:
		body := subst.One(v.Body, v.Arg, c.Args[0])
		rest := c.Args[1:]
		if len(rest) == 0 {
			return resolved(Constraint{Kind: KindType, Left: body, Right: c.Right, Span: c.Span})
		}
		return resolved(Constraint{Kind: KindFn, Left: body, Args: rest, Right: c.Right, Span: c.Span})

	case term.Symbol:
		e, ok := s.scratch.Entry(v.Handle)
		if !ok {
			panic("solve: FN constraint on dangling handle")
		}
		if e.Info.HasType() {
			return resolved(Constraint{Kind: KindFnTypeEqual, Left: e.Info.Type, Args: c.Args, Right: c.Right, Span: c.Span})
		}
		if s.canWrite(v.Handle) {
			e.Info.Type = s.synthesizePiChain(len(c.Args))
			if !s.scratch.IsTemp(v.Handle) {
				s.affected[v.Handle] = true
			}
			return progressed(c)
		}
		s.diags.Addf(diag.CodeUntypedExpression, c.Span, "%s has no declared type", v)
		return resolved()

	case term.Call:
		return resolved(Constraint{Kind: KindFn, Left: v.Fn, Args: append(append([]term.Term{}, v.Args...), c.Args...), Right: c.Right, Span: c.Span})

	case term.Universe, term.LevelType, term.Level, term.LevelSucc, term.LevelMax:
		s.diags.Addf(diag.CodeFnTypeExpected, c.Span, "%s is not a function", c.Left)
		return resolved()

	case term.Placeholder:
		return resolved()

	default:
		panic("solve: unexpected term kind in FN constraint")
	}
}

// synthesizePiChain builds a chain of n freshly-metavariabled Pi-types, one
// per argument, ending in a fresh output metavariable — the best guess
// assignable to a callee whose arity is known but whose type wasn't yet
// declared (§4.5, "Open Questions": resolved in favor of synthesizing
// immediately rather than leaving the FN constraint stuck).
func (s *Solver) synthesizePiChain(n int) term.Term {
	out := term.Term(term.Symbol{Handle: s.fresh("ret", false)})
	for i := 0; i < n; i++ {
		in := s.fresh("arg", false)
		out = term.FnType{InputType: term.Symbol{Handle: in}, OutputType: out, HasArg: false}
	}
	return out
}
