// Package registry implements the symbol registry (§4.1): a context of
// contexts mapping qualified names to entries that carry a type, an
// optional own-value, and optional down-values (rewrite rules), addressed
// by dense integer handles.
package registry

import (
	"strings"

	"github.com/Hadron67/typechecker/internal/term"
)

// Rule is a user-defined rewrite rule installed on a down-value.
type Rule struct {
	// Patterns is the set of pattern-hole symbols bound in Lhs.
	Patterns map[term.Handle]struct{}
	Lhs      term.Term
	Rhs      term.Term
}

// VariableInfo is the payload of a symbol entry.
type VariableInfo struct {
	Type      term.Term // optional; nil means untyped
	OwnValue  term.Term // optional; nil means no definition
	DownValue []Rule    // optional; nil/empty means no rewrite rules
}

// HasType reports whether Type is set.
func (v VariableInfo) HasType() bool { return v.Type != nil }

// HasOwnValue reports whether OwnValue is set.
func (v VariableInfo) HasOwnValue() bool { return v.OwnValue != nil }

// Entry is one symbol-table slot.
type Entry struct {
	Name      string
	Parent    term.Handle
	HasParent bool
	IsLocal   bool // binder-introduced or metavariable, vs. globally addressable
	Children  map[string]term.Handle
	Info      VariableInfo
}

// Resolver is the read interface every subsystem downstream of the
// registry (subst, matcher, expand, solve) programs against, so that they
// work identically whether handed a bare *Registry or a *Scratch layered
// on top of one.
type Resolver interface {
	Entry(h term.Handle) (*Entry, bool)
	Stringify(h term.Handle) string
	IsTemp(h term.Handle) bool
}

// Registry is the permanent symbol table.
type Registry struct {
	entries map[term.Handle]*Entry
	next    term.Handle
	roots   map[string]term.Handle
}

// New creates an empty permanent registry.
func New() *Registry {
	return &Registry{
		entries: make(map[term.Handle]*Entry),
		roots:   make(map[string]term.Handle),
	}
}

// Count returns one past the highest handle ever allocated by this
// registry. It is monotonic even across Remove calls, which is what lets a
// Scratch layered on top use a fixed isTemp threshold for its lifetime.
func (r *Registry) Count() int { return int(r.next) }

func (r *Registry) childMap(parent term.Handle, hasParent bool) map[string]term.Handle {
	if !hasParent {
		return r.roots
	}
	e, ok := r.entries[parent]
	if !ok {
		panic("registry: unknown parent handle")
	}
	if e.Children == nil {
		e.Children = make(map[string]term.Handle)
	}
	return e.Children
}

// Lookup finds a child of parent (or a root symbol, if hasParent is false)
// by name.
func (r *Registry) Lookup(parent term.Handle, hasParent bool, name string) (term.Handle, bool) {
	m := r.childMap(parent, hasParent)
	h, ok := m[name]
	return h, ok
}

// CreateChild returns the existing handle if a child named name already
// exists under parent, otherwise allocates and returns a fresh one.
// wasNew reports which case occurred.
func (r *Registry) CreateChild(parent term.Handle, hasParent bool, name string, isLocal bool) (term.Handle, bool) {
	m := r.childMap(parent, hasParent)
	if h, ok := m[name]; ok {
		return h, false
	}
	h := r.next
	r.next++
	r.entries[h] = &Entry{Name: name, Parent: parent, HasParent: hasParent, IsLocal: isLocal}
	m[name] = h
	return h, true
}

// Entry returns the entry for h, or ok=false if h is not a live permanent
// handle.
func (r *Registry) Entry(h term.Handle) (*Entry, bool) {
	e, ok := r.entries[h]
	return e, ok
}

// MustEntry is Entry but panics on a missing handle: internal invariant
// violations (an impossible tag, a dangling handle) are fatal, not
// user-visible diagnostics (§7).
func (r *Registry) MustEntry(h term.Handle) *Entry {
	e, ok := r.entries[h]
	if !ok {
		panic("registry: dangling handle")
	}
	return e
}

// IsTemp is always false for the permanent registry itself.
func (r *Registry) IsTemp(term.Handle) bool { return false }

// Stringify renders h as its dotted path from the root.
func (r *Registry) Stringify(h term.Handle) string {
	var parts []string
	cur, ok := h, true
	for ok {
		e, found := r.entries[cur]
		if !found {
			break
		}
		parts = append([]string{e.Name}, parts...)
		cur, ok = e.Parent, e.HasParent
	}
	return strings.Join(parts, ".")
}

// Remove releases h's slot for reuse (it is never actually reassigned —
// handles stay unique for the process lifetime — but the name and child
// bindings pointing at it are torn down). Used to roll back symbols created
// during a failed elaboration (§5, §7). Only the entry's own name binding
// in its parent's child map is touched, so removing entries in any order
// — not just the most-recently-added one — costs O(1) per entry; no
// registry-wide rebuild is ever needed.
func (r *Registry) Remove(h term.Handle) {
	e, ok := r.entries[h]
	if !ok {
		return
	}
	var m map[string]term.Handle
	if !e.HasParent {
		m = r.roots
	} else if pe, found := r.entries[e.Parent]; found {
		m = pe.Children
	}
	if m[e.Name] == h {
		delete(m, e.Name)
	}
	delete(r.entries, h)
}
