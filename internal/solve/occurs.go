package solve

import (
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/term"
)

// occurs reports whether target appears structurally within t, following
// through any symbol's own-value at most once (guarded by visited) so a
// chain of defined symbols doesn't loop forever. Used to reject an
// own-value assignment that would create a cycle (§9 "Occurs check").
func occurs(target term.Handle, t term.Term, reg registry.Resolver, visited map[term.Handle]bool) bool {
	switch v := t.(type) {
	case term.Symbol:
		if v.Handle == target {
			return true
		}
		if visited[v.Handle] {
			return false
		}
		e, ok := reg.Entry(v.Handle)
		if !ok || !e.Info.HasOwnValue() {
			return false
		}
		visited[v.Handle] = true
		return occurs(target, e.Info.OwnValue, reg, visited)

	case term.Call:
		if occurs(target, v.Fn, reg, visited) {
			return true
		}
		for _, a := range v.Args {
			if occurs(target, a, reg, visited) {
				return true
			}
		}
		return false

	case term.Lambda:
		return occurs(target, v.Body, reg, visited)

	case term.FnType:
		if occurs(target, v.InputType, reg, visited) {
			return true
		}
		return occurs(target, v.OutputType, reg, visited)

	case term.Universe:
		return occurs(target, v.Subscript, reg, visited)

	case term.LevelSucc:
		return occurs(target, v.Expr, reg, visited)

	case term.LevelMax:
		if occurs(target, v.Lhs, reg, visited) {
			return true
		}
		return occurs(target, v.Rhs, reg, visited)

	default:
		return false
	}
}
