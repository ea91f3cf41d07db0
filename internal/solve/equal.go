package solve

import (
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/expand"
	"github.com/Hadron67/typechecker/internal/subst"
	"github.com/Hadron67/typechecker/internal/term"
)

// evalEqual implements §4.5 "EQUAL evaluation".
func (s *Solver) evalEqual(c Constraint, stuck bool) evalResult {
	left, lChanged := expand.Expand(c.Left, s.scratch)
	right, rChanged := expand.Expand(c.Right, s.scratch)
	left, right = s.orient(left, right)

	if ls, ok := left.(term.Symbol); ok {
		if rs, ok := right.(term.Symbol); ok && ls.Handle == rs.Handle {
			return resolved()
		}
	}

	if ls, ok := left.(term.Symbol); ok {
		if s.trySetOwnValue(ls.Handle, right, c.Span) {
			var next []Constraint
			if e, _ := s.scratch.Entry(ls.Handle); e.Info.HasType() {
				next = append(next, Constraint{Kind: KindType, Left: right, Right: e.Info.Type, Span: c.Span})
			}
			return resolved(next...)
		}
		// left could not be assigned right as an own-value (it's locked, or
		// doing so would close an occurs-check cycle). Once the stuck pass
		// confirms neither side has anything left to expand, a settled
		// symbol/constructor facing a distinct, fully-reduced rigid shape on
		// the other side can never become equal to it: report a mismatch
		// instead of leaving the constraint to accumulate in the queue
		// forever.
		if stuck && !lChanged && !rChanged && isRigid(right) {
			s.diags.Addf(diag.CodeUnequal, c.Span, "%s is not equal to %s", left, right)
			return resolved()
		}
	}

	switch l := left.(type) {
	case term.Lambda:
		if r, ok := right.(term.Lambda); ok {
			fresh := s.fresh("cmp", true)
			bl := subst.One(l.Body, l.Arg, term.Symbol{Handle: fresh})
			br := subst.One(r.Body, r.Arg, term.Symbol{Handle: fresh})
			return resolved(Constraint{Kind: KindEqual, Left: bl, Right: br, Span: c.Span})
		}

	case term.FnType:
		if r, ok := right.(term.FnType); ok {
			fresh := s.fresh("cmp", true)
			lo := renameOutput(l, fresh)
			ro := renameOutput(r, fresh)
			return resolved(
				Constraint{Kind: KindEqual, Left: l.InputType, Right: r.InputType, Span: c.Span},
				Constraint{Kind: KindEqual, Left: lo, Right: ro, Span: c.Span},
			)
		}

	case term.Universe:
		if r, ok := right.(term.Universe); ok {
			return resolved(Constraint{Kind: KindEqual, Left: l.Subscript, Right: r.Subscript, Span: c.Span})
		}

	case term.LevelType:
		if _, ok := right.(term.LevelType); ok {
			return resolved()
		}

	case term.Level:
		if r, ok := right.(term.Level); ok {
			if l.Value == r.Value {
				return resolved()
			}
			s.diags.Addf(diag.CodeUnequal, c.Span, "%s is not equal to %s", left, right)
			return resolved()
		}
		if r, ok := right.(term.LevelSucc); ok {
			return s.evalSuccVsLevel(r, l, c.Span)
		}

	case term.LevelSucc:
		switch r := right.(type) {
		case term.LevelSucc:
			return resolved(Constraint{Kind: KindEqual, Left: l.Expr, Right: r.Expr, Span: c.Span})
		case term.Level:
			return s.evalSuccVsLevel(l, r, c.Span)
		}

	case term.Call:
		if r, ok := right.(term.Call); ok && stuck {
			if len(l.Args) != len(r.Args) {
				s.diags.Addf(diag.CodeUnequal, c.Span, "%s is not equal to %s", left, right)
				return resolved()
			}
			next := []Constraint{{Kind: KindEqual, Left: l.Fn, Right: r.Fn, Span: c.Span}}
			for i := range l.Args {
				next = append(next, Constraint{Kind: KindEqual, Left: l.Args[i], Right: r.Args[i], Span: c.Span})
			}
			return resolved(next...)
		}
	}

	if lChanged || rChanged {
		return progressed(Constraint{Kind: KindEqual, Left: left, Right: right, Span: c.Span})
	}
	return unresolved(Constraint{Kind: KindEqual, Left: left, Right: right, Span: c.Span})
}

// evalSuccVsLevel handles `S(x) == n`: succeeds against n>0 by recursing on
// n-1, fails (UNEQUAL) against 0.
func (s *Solver) evalSuccVsLevel(succ term.LevelSucc, lvl term.Level, span diag.Span) evalResult {
	if lvl.Value == 0 {
		s.diags.Addf(diag.CodeUnequal, span, "%s is not equal to %s", succ, lvl)
		return resolved()
	}
	return resolved(Constraint{Kind: KindEqual, Left: succ.Expr, Right: term.Level{Value: lvl.Value - 1}, Span: span})
}

// isRigid reports whether t is a fully-constructed term shape that cannot
// later turn into something else by further solving — as opposed to a bare
// symbol, which might still receive an own-value.
func isRigid(t term.Term) bool {
	switch t.(type) {
	case term.Call, term.Lambda, term.FnType, term.Universe, term.LevelType, term.Level, term.LevelSucc:
		return true
	default:
		return false
	}
}

// orient normalises operand order: a bare symbol goes on the left, and
// when both sides are symbols the temp one is preferred on the left.
func (s *Solver) orient(l, r term.Term) (term.Term, term.Term) {
	lSym, lok := l.(term.Symbol)
	rSym, rok := r.(term.Symbol)
	if !lok && rok {
		return r, l
	}
	if lok && rok {
		if !s.scratch.IsTemp(lSym.Handle) && s.scratch.IsTemp(rSym.Handle) {
			return r, l
		}
	}
	return l, r
}

// renameOutput alpha-renames a Pi-type's output to use fresh in place of
// its own bound argument, or returns the output unchanged if the Pi-type
// isn't dependent (it then can't mention any bound argument at all).
func renameOutput(f term.FnType, fresh term.Handle) term.Term {
	if !f.HasArg {
		return f.OutputType
	}
	return subst.One(f.OutputType, f.Arg, term.Symbol{Handle: fresh})
}

// trySetOwnValue attempts `setOwnValue(h, val)` (§4.5): succeeds only if h
// has no own-value yet, is temp or unlocked, and assigning val would not
// create an own-value cycle.
func (s *Solver) trySetOwnValue(h term.Handle, val term.Term, span diag.Span) bool {
	e, ok := s.scratch.Entry(h)
	if !ok {
		return false
	}
	if e.Info.HasOwnValue() {
		return false
	}
	if !s.canWrite(h) {
		return false
	}
	if occurs(h, val, s.scratch, map[term.Handle]bool{}) {
		return false
	}
	e.Info.OwnValue = val
	if !s.scratch.IsTemp(h) {
		s.affected[h] = true
	}
	return true
}
