package solve

import (
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/subst"
	"github.com/Hadron67/typechecker/internal/term"
)

// finalCheck implements the four numbered steps of §4.5 "Final check",
// run once after the fixed-point loop and stuck pass have both stopped
// making progress.
func (s *Solver) finalCheck() {
	// 1. Default every undetermined LEVEL_TYPE temp metavariable to Level 0
	// (§9, explicitly permitted default rather than leaving it unresolved).
	for _, h := range s.scratch.TempHandles() {
		e := s.scratch.MustEntry(h)
		if e.IsLocal || e.Info.HasOwnValue() {
			continue
		}
		if _, isLevelType := e.Info.Type.(term.LevelType); isLevelType {
			e.Info.OwnValue = term.Level{Value: 0}
		}
	}

	// 2. Anything still sitting in the queue never reached a fixed point.
	for _, c := range s.queue {
		s.diags.Addf(diag.CodeUnresolvedConstraint, c.Span, "unresolved %s constraint on %s", c.Kind, c.Left)
	}
	s.queue = nil

	// 3. A non-local temp metavariable (one standing in for an inferred
	// value, not a binder-introduced local) that still has no own-value
	// could not be determined from the surrounding constraints.
	for _, h := range s.scratch.TempHandles() {
		e := s.scratch.MustEntry(h)
		if e.IsLocal || e.Info.HasOwnValue() {
			continue
		}
		s.diags.Addf(diag.CodeUninferredVar, diag.Span{}, "could not infer a value for %s", s.scratch.Stringify(h))
	}

	// 4. Fold resolved temp own-values back into every permanent entry the
	// solve pass touched, so the registry no longer references scratch
	// handles once this Scratch is discarded.
	subs := make(map[term.Handle]term.Term)
	for _, h := range s.scratch.TempHandles() {
		e := s.scratch.MustEntry(h)
		if e.Info.HasOwnValue() {
			subs[h] = e.Info.OwnValue
		}
	}
	if len(subs) == 0 {
		return
	}
	for _, h := range s.AffectedSymbols() {
		s.resolveEntry(s.scratch.Base(), h, subs)
	}
}

func (s *Solver) resolveEntry(reg *registry.Registry, h term.Handle, subs map[term.Handle]term.Term) {
	e, ok := reg.Entry(h)
	if !ok {
		return
	}
	if e.Info.HasType() {
		e.Info.Type = subst.Many(e.Info.Type, subs)
	}
	if e.Info.HasOwnValue() {
		e.Info.OwnValue = subst.Many(e.Info.OwnValue, subs)
	}
	for i, rule := range e.Info.DownValue {
		e.Info.DownValue[i] = registry.Rule{
			Patterns: rule.Patterns,
			Lhs:      subst.Many(rule.Lhs, subs),
			Rhs:      subst.Many(rule.Rhs, subs),
		}
	}
}
