package solve

import (
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/subst"
	"github.com/Hadron67/typechecker/internal/term"
)

// evalType implements §4.5 "TYPE evaluation", case-dispatched on c.Left.
func (s *Solver) evalType(c Constraint) evalResult {
	switch v := c.Left.(type) {
	case term.Symbol:
		e, ok := s.scratch.Entry(v.Handle)
		if !ok {
			panic("solve: TYPE constraint on dangling handle")
		}
		if e.Info.HasType() {
			return resolved(Constraint{Kind: KindEqual, Left: e.Info.Type, Right: c.Right, Span: c.Span})
		}
		if s.canWrite(v.Handle) {
			e.Info.Type = c.Right
			if !s.scratch.IsTemp(v.Handle) {
				s.affected[v.Handle] = true
			}
			var next []Constraint
			if e.Info.HasOwnValue() {
				// Open question (§9) resolved as: post ownValue : type
				// immediately rather than deferring.
				next = append(next, Constraint{Kind: KindType, Left: e.Info.OwnValue, Right: c.Right, Span: c.Span})
			}
			return resolved(next...)
		}
		s.diags.Addf(diag.CodeUntypedExpression, c.Span, "%s has no declared type", v)
		return resolved()

	case term.Call:
		return resolved(Constraint{Kind: KindFn, Left: v.Fn, Args: v.Args, Right: c.Right, Span: c.Span})

	case term.Lambda:
		inputMeta := s.fresh("in", false)
		outputMeta := s.fresh("out", false)
		argLocal := s.fresh("arg", true)
		s.scratch.MustEntry(argLocal).Info.Type = term.Symbol{Handle: inputMeta}
		body := subst.One(v.Body, v.Arg, term.Symbol{Handle: argLocal})
		pi := term.FnType{InputType: term.Symbol{Handle: inputMeta}, OutputType: term.Symbol{Handle: outputMeta}, Arg: argLocal, HasArg: true}
		return resolved(
			Constraint{Kind: KindType, Left: body, Right: term.Symbol{Handle: outputMeta}, Span: c.Span},
			Constraint{Kind: KindEqual, Left: pi, Right: c.Right, Span: c.Span},
		)

	case term.FnType:
		inLevel := s.fresh("lin", false)
		outLevel := s.fresh("lout", false)
		next := []Constraint{
			{Kind: KindType, Left: v.InputType, Right: term.Universe{Subscript: term.Symbol{Handle: inLevel}}, Span: c.Span},
		}
		output := v.OutputType
		if v.HasArg {
			newArg := s.fresh("arg", true)
			s.scratch.MustEntry(newArg).Info.Type = v.InputType
			output = subst.One(v.OutputType, v.Arg, term.Symbol{Handle: newArg})
		}
		next = append(next, Constraint{Kind: KindType, Left: output, Right: term.Universe{Subscript: term.Symbol{Handle: outLevel}}, Span: c.Span})
		next = append(next, Constraint{Kind: KindEqual, Left: c.Right, Right: term.Universe{Subscript: term.LevelMax{Lhs: term.Symbol{Handle: inLevel}, Rhs: term.Symbol{Handle: outLevel}}}, Span: c.Span})
		return resolved(next...)

	case term.Universe:
		return resolved(Constraint{Kind: KindEqual, Left: c.Right, Right: term.Universe{Subscript: term.LevelSucc{Expr: v.Subscript}}, Span: c.Span})

	case term.Level, term.LevelSucc, term.LevelMax:
		return resolved(Constraint{Kind: KindEqual, Left: c.Right, Right: term.LevelType{}, Span: c.Span})

	case term.LevelType:
		return resolved(Constraint{Kind: KindEqual, Left: c.Right, Right: term.Universe{Subscript: term.Level{Value: 0}}, Span: c.Span})

	case term.Placeholder, term.Pattern:
		// A rewrite rule's left-hand side is typed structurally like any
		// other call (the Call/FN_TYPE_EQUAL path above recurses into its
		// args), which can bottom out on a bare pattern hole here: its type
		// is whatever the call site substitutes, not something to solve for
		// up front.
		return resolved()

	default:
		panic("solve: unexpected term kind in TYPE constraint")
	}
}
