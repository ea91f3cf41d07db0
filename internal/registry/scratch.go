package registry

import (
	"fmt"

	"github.com/Hadron67/typechecker/internal/term"
)

// Scratch layers temporary metavariable entries on top of a permanent
// Registry without ever mutating it directly. Handles it assigns start at a
// threshold placed far above the permanent count at construction, so they
// stay greater than any permanent handle, including ones the elaborator
// creates while the Scratch is live; this gives the cheap isTemp(h) = h >=
// threshold test (§4.1).
type Scratch struct {
	base      *Registry
	threshold term.Handle
	entries   []*Entry
}

// NewScratch opens a scratch layer over base. The solver creates one per
// elaboration pass and discards it once the final check has substituted
// every resolved temp own-value back into the permanent entries it
// touched.
func NewScratch(base *Registry) *Scratch {
	return &Scratch{base: base, threshold: term.Handle(base.Count()) + 1<<30}
}

// IsTemp reports whether h was allocated by this scratch layer.
func (s *Scratch) IsTemp(h term.Handle) bool { return h >= s.threshold }

// Fresh allocates a new temp metavariable entry. name is used only for
// diagnostics and debug printing.
func (s *Scratch) Fresh(name string, isLocal bool) term.Handle {
	h := s.threshold + term.Handle(len(s.entries))
	s.entries = append(s.entries, &Entry{Name: name, IsLocal: isLocal})
	return h
}

// Entry resolves h, looking it up in the scratch layer if it's a temp
// handle and delegating to the base registry otherwise.
func (s *Scratch) Entry(h term.Handle) (*Entry, bool) {
	if !s.IsTemp(h) {
		return s.base.Entry(h)
	}
	idx := int(h - s.threshold)
	if idx < 0 || idx >= len(s.entries) {
		return nil, false
	}
	return s.entries[idx], true
}

// MustEntry panics on a dangling handle (internal invariant violation,
// §7).
func (s *Scratch) MustEntry(h term.Handle) *Entry {
	e, ok := s.Entry(h)
	if !ok {
		panic("scratch: dangling handle")
	}
	return e
}

// Stringify renders permanent handles via the base registry's dotted path,
// and temp handles as a synthetic name.
func (s *Scratch) Stringify(h term.Handle) string {
	if !s.IsTemp(h) {
		return s.base.Stringify(h)
	}
	if e, ok := s.Entry(h); ok && e.Name != "" {
		return "?" + e.Name
	}
	return fmt.Sprintf("?t%d", int(h-s.threshold))
}

// TempHandles returns every handle this scratch layer has allocated, in
// allocation order. The solver's final check walks these to default
// undetermined universe levels and to report uninferred metavariables.
func (s *Scratch) TempHandles() []term.Handle {
	hs := make([]term.Handle, len(s.entries))
	for i := range s.entries {
		hs[i] = s.threshold + term.Handle(i)
	}
	return hs
}

// Base returns the underlying permanent registry.
func (s *Scratch) Base() *Registry { return s.base }
