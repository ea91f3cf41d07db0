// Package expand implements the normaliser ("Expander", §4.4): weak
// reduction of own-values, beta-redexes, user rewrite rules, and closed
// level arithmetic.
package expand

import (
	"github.com/Hadron67/typechecker/internal/matcher"
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/subst"
	"github.com/Hadron67/typechecker/internal/term"
)

// Expand reduces t one level of visibility at a time until no local redex
// remains, reporting whether any reduction fired.
func Expand(t term.Term, reg registry.Resolver) (term.Term, bool) {
	switch v := t.(type) {
	case term.Symbol:
		e, ok := reg.Entry(v.Handle)
		if ok && e.Info.HasOwnValue() {
			inner, _ := Expand(e.Info.OwnValue, reg)
			return inner, true
		}
		return v, false

	case term.Call:
		return expandCall(v, reg)

	case term.Lambda:
		newBody, changed := Expand(v.Body, reg)
		if !changed {
			return v, false
		}
		return term.Lambda{Arg: v.Arg, Body: newBody}, true

	case term.FnType:
		newIn, inChanged := Expand(v.InputType, reg)
		newOut, outChanged := Expand(v.OutputType, reg)
		if !inChanged && !outChanged {
			return v, false
		}
		return term.FnType{InputType: newIn, OutputType: newOut, Arg: v.Arg, HasArg: v.HasArg}, true

	case term.Universe:
		newSub, changed := Expand(v.Subscript, reg)
		if !changed {
			return v, false
		}
		return term.Universe{Subscript: newSub}, true

	case term.LevelSucc:
		inner, changed := Expand(v.Expr, reg)
		if lv, ok := inner.(term.Level); ok {
			return term.Level{Value: lv.Value + 1}, true
		}
		if !changed {
			return v, false
		}
		return term.LevelSucc{Expr: inner}, true

	case term.LevelMax:
		return expandLevelMax(v, reg)

	case term.LevelType, term.Level, term.Pattern, term.Placeholder:
		return v, false

	default:
		panic("expand: unhandled term kind")
	}
}

func expandLevelMax(v term.LevelMax, reg registry.Resolver) (term.Term, bool) {
	l, lChanged := Expand(v.Lhs, reg)
	r, rChanged := Expand(v.Rhs, reg)

	if lv, ok := l.(term.Level); ok {
		if rv, ok := r.(term.Level); ok {
			max := lv.Value
			if rv.Value > max {
				max = rv.Value
			}
			return term.Level{Value: max}, true
		}
		// max(0, x) == x; permitted algebraic simplification (§9 open
		// question), not required for soundness.
		if lv.Value == 0 {
			return r, true
		}
	}
	if rv, ok := r.(term.Level); ok && rv.Value == 0 {
		return l, true
	}

	if !lChanged && !rChanged {
		return v, false
	}
	return term.LevelMax{Lhs: l, Rhs: r}, true
}

// expandCall implements §4.4 rule 2: expand fn, then beta-reduce, flatten
// curried calls, or try down-value rewrite rules against the settled call
// shape, in that priority order, looping until none apply.
func expandCall(c term.Call, reg registry.Resolver) (term.Term, bool) {
	changedOverall := false
	fn, fnChanged := Expand(c.Fn, reg)
	changedOverall = changedOverall || fnChanged
	args := c.Args

	for {
		switch f := fn.(type) {
		case term.Lambda:
			substituted := subst.One(f.Body, f.Arg, args[0])
			changedOverall = true
			if len(args) == 1 {
				result, _ := Expand(substituted, reg)
				return result, true
			}
			nextFn, _ := Expand(substituted, reg)
			fn = nextFn
			args = args[1:]
			continue

		case term.Call:
			merged := make([]term.Term, 0, len(f.Args)+len(args))
			merged = append(merged, f.Args...)
			merged = append(merged, args...)
			fn = f.Fn
			args = merged
			changedOverall = true
			continue

		default:
			if sym, ok := fn.(term.Symbol); ok {
				if e, found := reg.Entry(sym.Handle); found && len(e.Info.DownValue) > 0 {
					expandedArgs, anyArgChanged := expandArgs(args, reg)
					shape := term.Call{Fn: fn, Args: expandedArgs}
					if rhs, ok := tryRules(e.Info.DownValue, shape); ok {
						result, _ := Expand(rhs, reg)
						return result, true
					}
					if anyArgChanged {
						return term.Call{Fn: fn, Args: expandedArgs}, true
					}
				}
			}
			if !changedOverall {
				return term.Call{Fn: fn, Args: args}, false
			}
			return term.Call{Fn: fn, Args: args}, true
		}
	}
}

func expandArgs(args []term.Term, reg registry.Resolver) ([]term.Term, bool) {
	out := make([]term.Term, len(args))
	any := false
	for i, a := range args {
		ea, changed := Expand(a, reg)
		out[i] = ea
		any = any || changed
	}
	return out, any
}

// tryRules tries each rewrite rule in definition order, returning the
// instantiated RHS of the first one whose LHS matches shape.
func tryRules(rules []registry.Rule, shape term.Call) (term.Term, bool) {
	for _, rule := range rules {
		if bindings, ok := matcher.Match(rule.Lhs, shape); ok {
			return subst.Many(rule.Rhs, map[term.Handle]term.Term(bindings)), true
		}
	}
	return nil, false
}
