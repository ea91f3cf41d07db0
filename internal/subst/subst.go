// Package subst implements capture-avoiding substitution (§4.2): replacing
// one or many symbols by terms, used for beta-reduction, rewrite-rule
// application, and post-solve metavariable instantiation.
//
// Binder symbols are always freshly minted and therefore unique across the
// whole program (term package invariant 2), so substitution never needs to
// alpha-rename to avoid capture. It does still mask a binder's own symbol
// out of the substitution while descending into its scope, so that a
// substitution map which happens to target a bound variable's handle
// cannot reach past the binder that owns it.
//
// Traversal uses plain recursion: terms produced by the elaborator and
// solver are bounded by source-program nesting depth, which in practice
// never approaches Go's goroutine stack limit. Callers processing
// adversarially deep terms should pre-flatten them; this package does not
// defend against that.
package subst

import "github.com/Hadron67/typechecker/internal/term"

// One substitutes replacement for every unmasked occurrence of source in t.
func One(t term.Term, source term.Handle, replacement term.Term) term.Term {
	out, _ := replace(t, map[term.Handle]term.Term{source: replacement}, nil)
	return out
}

// Many substitutes, simultaneously, each mapped term for its key handle.
func Many(t term.Term, subs map[term.Handle]term.Term) term.Term {
	out, _ := replace(t, subs, nil)
	return out
}

func masked(stack []term.Handle, h term.Handle) bool {
	for _, m := range stack {
		if m == h {
			return true
		}
	}
	return false
}

// replace returns the substituted term and whether anything changed, so
// callers building parent nodes can skip reallocating an unchanged subtree.
func replace(t term.Term, subs map[term.Handle]term.Term, maskStack []term.Handle) (term.Term, bool) {
	switch v := t.(type) {
	case term.Symbol:
		if masked(maskStack, v.Handle) {
			return v, false
		}
		if r, ok := subs[v.Handle]; ok {
			return r, true
		}
		return v, false

	case term.Call:
		newFn, fnChanged := replace(v.Fn, subs, maskStack)
		newArgs := make([]term.Term, len(v.Args))
		anyArgChanged := false
		for i, a := range v.Args {
			na, ch := replace(a, subs, maskStack)
			newArgs[i] = na
			anyArgChanged = anyArgChanged || ch
		}
		if !fnChanged && !anyArgChanged {
			return v, false
		}
		return term.Call{Fn: newFn, Args: newArgs}, true

	case term.Lambda:
		newBody, changed := replace(v.Body, subs, append(maskStack, v.Arg))
		if !changed {
			return v, false
		}
		return term.Lambda{Arg: v.Arg, Body: newBody}, true

	case term.FnType:
		newIn, inChanged := replace(v.InputType, subs, maskStack)
		outStack := maskStack
		if v.HasArg {
			outStack = append(maskStack, v.Arg)
		}
		newOut, outChanged := replace(v.OutputType, subs, outStack)
		if !inChanged && !outChanged {
			return v, false
		}
		return term.FnType{InputType: newIn, OutputType: newOut, Arg: v.Arg, HasArg: v.HasArg}, true

	case term.Universe:
		newSub, changed := replace(v.Subscript, subs, maskStack)
		if !changed {
			return v, false
		}
		return term.Universe{Subscript: newSub}, true

	case term.LevelSucc:
		newExpr, changed := replace(v.Expr, subs, maskStack)
		if !changed {
			return v, false
		}
		return term.LevelSucc{Expr: newExpr}, true

	case term.LevelMax:
		newLhs, lhsChanged := replace(v.Lhs, subs, maskStack)
		newRhs, rhsChanged := replace(v.Rhs, subs, maskStack)
		if !lhsChanged && !rhsChanged {
			return v, false
		}
		return term.LevelMax{Lhs: newLhs, Rhs: newRhs}, true

	case term.LevelType, term.Level, term.Pattern, term.Placeholder:
		return v, false

	default:
		panic("subst: unhandled term kind")
	}
}
