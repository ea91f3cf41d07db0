package registry

import (
	"testing"

	"github.com/Hadron67/typechecker/internal/term"
)

func TestCreateChildIsIdempotentByName(t *testing.T) {
	r := New()
	h1, wasNew1 := r.CreateChild(term.NoHandle, false, "Nat", false)
	h2, wasNew2 := r.CreateChild(term.NoHandle, false, "Nat", false)
	if !wasNew1 || wasNew2 {
		t.Fatalf("want (new, existing), got (%v, %v)", wasNew1, wasNew2)
	}
	if h1 != h2 {
		t.Fatalf("want the same handle back, got %d and %d", h1, h2)
	}
}

func TestStringifyRendersDottedPath(t *testing.T) {
	r := New()
	nat, _ := r.CreateChild(term.NoHandle, false, "Nat", false)
	zero, _ := r.CreateChild(nat, true, "zero", false)
	if got, want := r.Stringify(zero), "Nat.zero"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRemoveTearsDownTheChildBinding(t *testing.T) {
	r := New()
	nat, _ := r.CreateChild(term.NoHandle, false, "Nat", false)
	r.Remove(nat)

	if _, ok := r.Entry(nat); ok {
		t.Fatal("expected the entry to be gone after Remove")
	}
	if _, ok := r.Lookup(term.NoHandle, false, "Nat"); ok {
		t.Fatal("expected the name binding to be gone after Remove")
	}
}

func TestRemoveThenRecreateAllocatesANewHandle(t *testing.T) {
	r := New()
	first, _ := r.CreateChild(term.NoHandle, false, "Nat", false)
	r.Remove(first)
	second, wasNew := r.CreateChild(term.NoHandle, false, "Nat", false)
	if !wasNew {
		t.Fatal("expected a fresh create after removal")
	}
	if second == first {
		t.Fatal("expected handles to never be reused")
	}
}

func TestCountIsMonotonicAcrossRemovals(t *testing.T) {
	r := New()
	r.CreateChild(term.NoHandle, false, "a", false)
	r.CreateChild(term.NoHandle, false, "b", false)
	before := r.Count()
	h, _ := r.Lookup(term.NoHandle, false, "a")
	r.Remove(h)
	if r.Count() != before {
		t.Fatalf("want Count to stay %d after a removal, got %d", before, r.Count())
	}
}

func TestScratchIsTempThresholdAndFallthrough(t *testing.T) {
	r := New()
	perm, _ := r.CreateChild(term.NoHandle, false, "Nat", false)
	s := NewScratch(r)

	if s.IsTemp(perm) {
		t.Fatal("a permanent handle must not read as temp")
	}
	fresh := s.Fresh("t", false)
	if !s.IsTemp(fresh) {
		t.Fatal("a freshly allocated scratch handle must read as temp")
	}

	if _, ok := s.Entry(perm); !ok {
		t.Fatal("scratch must fall through to the base registry for permanent handles")
	}
}

func TestScratchStringifyDistinguishesTempFromPermanent(t *testing.T) {
	r := New()
	perm, _ := r.CreateChild(term.NoHandle, false, "Nat", false)
	s := NewScratch(r)
	fresh := s.Fresh("n", false)

	if got, want := s.Stringify(perm), "Nat"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := s.Stringify(fresh), "?n"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
