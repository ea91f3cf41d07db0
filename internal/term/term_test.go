package term

import "testing"

func TestStringRendersWithoutANamer(t *testing.T) {
	SetNamer(nil)
	s := Symbol{Handle: 7}
	if got, want := s.String(), "h7"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

type fakeNamer map[Handle]string

func (f fakeNamer) Stringify(h Handle) string { return f[h] }

func TestStringUsesInstalledNamer(t *testing.T) {
	SetNamer(fakeNamer{3: "Nat.zero"})
	defer SetNamer(nil)
	s := Symbol{Handle: 3}
	if got, want := s.String(), "Nat.zero"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestCallStringFormatsArgs(t *testing.T) {
	SetNamer(nil)
	c := Call{Fn: Symbol{Handle: 1}, Args: []Term{Symbol{Handle: 2}, Symbol{Handle: 3}}}
	if got, want := c.String(), "h1(h2, h3)"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFnTypeStringDependentVsNonDependent(t *testing.T) {
	SetNamer(nil)
	nonDep := FnType{InputType: Symbol{Handle: 1}, OutputType: Symbol{Handle: 2}}
	if got, want := nonDep.String(), "h1 -> h2"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	dep := FnType{InputType: Symbol{Handle: 1}, OutputType: Symbol{Handle: 2}, Arg: 9, HasArg: true}
	if got, want := dep.String(), "(h9: h1) -> h2"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestLevelArithmeticStrings(t *testing.T) {
	SetNamer(nil)
	if got, want := (Level{Value: 3}).String(), "3l"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := (LevelSucc{Expr: Level{Value: 2}}).String(), "succ(2l)"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := (LevelMax{Lhs: Level{Value: 1}, Rhs: Level{Value: 2}}).String(), "max(1l, 2l)"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestIsLevelKind(t *testing.T) {
	cases := []struct {
		t    Term
		want bool
	}{
		{Level{Value: 0}, true},
		{LevelSucc{Expr: Level{Value: 0}}, true},
		{LevelMax{Lhs: Level{Value: 0}, Rhs: Level{Value: 0}}, true},
		{Symbol{Handle: 1}, true},
		{LevelType{}, false},
		{Placeholder{}, false},
	}
	for _, c := range cases {
		if got := IsLevelKind(c.t); got != c.want {
			t.Fatalf("IsLevelKind(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestPatternString(t *testing.T) {
	SetNamer(nil)
	if got, want := (Pattern{Variable: 5, HasVariable: true}).String(), "?h5"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := (Pattern{}).String(), "?"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
