// Package term defines the core expression tree: the small set of tagged
// variants every surface construct desugars into (§3 of the elaborator
// design). Terms carry structural sharing by value — a Term is immutable
// once built; substitution, normalisation and matching always return a new
// tree rather than mutating in place.
package term

import (
	"fmt"
	"strings"
)

// Handle is a dense integer identifying a symbol-table entry. It is opaque
// outside the registry package: a Term only ever stores the numeric handle,
// never a pointer to an entry, so terms stay comparable and cheap to copy.
type Handle int

// NoHandle marks the absence of a handle, e.g. the parent argument when
// creating or looking up a root-level symbol.
const NoHandle Handle = -1

// Kind tags the variant a Term belongs to.
type Kind int

const (
	KindSymbol Kind = iota
	KindCall
	KindLambda
	KindFnType
	KindUniverse
	KindLevelType
	KindLevel
	KindLevelSucc
	KindLevelMax
	KindPattern
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "SYMBOL"
	case KindCall:
		return "CALL"
	case KindLambda:
		return "LAMBDA"
	case KindFnType:
		return "FN_TYPE"
	case KindUniverse:
		return "UNIVERSE"
	case KindLevelType:
		return "LEVEL_TYPE"
	case KindLevel:
		return "LEVEL"
	case KindLevelSucc:
		return "LEVEL_SUCC"
	case KindLevelMax:
		return "LEVEL_MAX"
	case KindPattern:
		return "PATTERN"
	case KindPlaceholder:
		return "PLACEHOLDER"
	default:
		return "UNKNOWN"
	}
}

// Term is the interface every core expression variant implements.
type Term interface {
	Kind() Kind
	String() string
}

// Name resolves a handle's printable name through an optional stringer.
// Callers without a registry handy (e.g. quick debug output) get "h<N>".
type Namer interface {
	Stringify(h Handle) string
}

var activeNamer Namer

// SetNamer installs the registry used by String() to render handles as
// dotted names instead of raw integers. The reference driver installs its
// permanent registry here once constructed; it is a package-level default
// purely for debug ergonomics and never consulted by elaboration logic.
func SetNamer(n Namer) { activeNamer = n }

func nameOf(h Handle) string {
	if activeNamer != nil {
		if s := activeNamer.Stringify(h); s != "" {
			return s
		}
	}
	return fmt.Sprintf("h%d", int(h))
}

// Symbol is a reference to a registry entry.
type Symbol struct {
	Handle Handle
}

func (Symbol) Kind() Kind        { return KindSymbol }
func (s Symbol) String() string  { return nameOf(s.Handle) }
func NewSymbol(h Handle) Symbol  { return Symbol{Handle: h} }

// Call is n-ary application; Args must be non-empty. Curried applications
// are flattened into one Call during normalisation (§4.4 rule 2b).
type Call struct {
	Fn   Term
	Args []Term
}

func (Call) Kind() Kind { return KindCall }
func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Fn.String(), strings.Join(parts, ", "))
}

// Lambda is a single-argument abstraction.
type Lambda struct {
	Arg  Handle
	Body Term
}

func (Lambda) Kind() Kind       { return KindLambda }
func (l Lambda) String() string { return fmt.Sprintf("\\%s %s", nameOf(l.Arg), l.Body.String()) }

// FnType is a (possibly dependent) Pi-type. It is dependent iff HasArg is
// true; OutputType may then reference Arg (invariant 1, §3).
type FnType struct {
	InputType  Term
	OutputType Term
	Arg        Handle
	HasArg     bool
}

func (FnType) Kind() Kind { return KindFnType }
func (f FnType) String() string {
	if f.HasArg {
		return fmt.Sprintf("(%s: %s) -> %s", nameOf(f.Arg), f.InputType.String(), f.OutputType.String())
	}
	return fmt.Sprintf("%s -> %s", f.InputType.String(), f.OutputType.String())
}

// Universe is Type(n) for a level-kind Subscript.
type Universe struct {
	Subscript Term
}

func (Universe) Kind() Kind       { return KindUniverse }
func (u Universe) String() string { return fmt.Sprintf("type(%s)", u.Subscript.String()) }

// LevelType is the type of universe levels, i.e. builtin.Level's type.
type LevelType struct{}

func (LevelType) Kind() Kind       { return KindLevelType }
func (LevelType) String() string   { return "Level" }

// Level is a closed level literal.
type Level struct {
	Value uint64
}

func (Level) Kind() Kind       { return KindLevel }
func (l Level) String() string { return fmt.Sprintf("%dl", l.Value) }

// LevelSucc is the successor of a level.
type LevelSucc struct {
	Expr Term
}

func (LevelSucc) Kind() Kind       { return KindLevelSucc }
func (s LevelSucc) String() string { return fmt.Sprintf("succ(%s)", s.Expr.String()) }

// LevelMax is the maximum of two levels.
type LevelMax struct {
	Lhs, Rhs Term
}

func (LevelMax) Kind() Kind       { return KindLevelMax }
func (m LevelMax) String() string { return fmt.Sprintf("max(%s, %s)", m.Lhs.String(), m.Rhs.String()) }

// Pattern is a pattern hole, valid only inside rewrite-rule LHSs. An unnamed
// pattern (HasVariable=false) matches anything without binding.
type Pattern struct {
	Variable    Handle
	HasVariable bool
}

func (Pattern) Kind() Kind { return KindPattern }
func (p Pattern) String() string {
	if p.HasVariable {
		return "?" + nameOf(p.Variable)
	}
	return "?"
}

// Placeholder is `_`, a type-inferred hole.
type Placeholder struct{}

func (Placeholder) Kind() Kind     { return KindPlaceholder }
func (Placeholder) String() string { return "_" }

// IsLevelKind reports whether t is a valid universe subscript (invariant 4):
// a LEVEL, LEVEL_SUCC, LEVEL_MAX, or a SYMBOL (assumed typed LEVEL_TYPE by
// the caller — term alone cannot check that without the registry).
func IsLevelKind(t Term) bool {
	switch t.(type) {
	case Level, LevelSucc, LevelMax, Symbol:
		return true
	default:
		return false
	}
}
