// Package ast defines the raw syntax tree the parser produces (§1, §6): a
// mechanical, un-typechecked mirror of the source grammar. The elaborator
// converts these nodes into internal/term terms.
package ast

import "github.com/Hadron67/typechecker/internal/diag"

// Node is any AST node; every node can report the source span it came from.
type Node interface {
	Span() diag.Span
}

// Expr is any expression-position node.
type Expr interface {
	Node
	exprNode()
}

type span struct{ Line, Column int }

func (s span) Span() diag.Span { return diag.Span{Line: s.Line, Column: s.Column} }

// SetSpan records the source position of a node. The parser calls this
// right after constructing each node, since the span fields are otherwise
// unexported (every node embeds span, not *span, so zero values would
// never get a position without this).
func (s *span) SetSpan(line, col int) { s.Line, s.Column = line, col }

// Ident is a (possibly dotted) identifier path, e.g. `Nat.succ`.
type Ident struct {
	span
	Parts []string
}

func (*Ident) exprNode() {}

// Apply is an n-ary function call `f(a, b, c)`.
type Apply struct {
	span
	Fn   Expr
	Args []Expr
}

func (*Apply) exprNode() {}

// Lambda is `\x body`; right-associative chains (`\x\y e`) are parsed as
// nested Lambdas.
type Lambda struct {
	span
	Param string
	Body  Expr
}

func (*Lambda) exprNode() {}

// Arrow is a (possibly dependent) function type. ParamName is valid only
// when Dependent is true.
type Arrow struct {
	span
	Dependent bool
	ParamName string
	Input     Expr
	Output    Expr
}

func (*Arrow) exprNode() {}

// Universe is `type(L)`.
type Universe struct {
	span
	Subscript Expr
}

func (*Universe) exprNode() {}

// LevelLit is a closed level literal, e.g. `3l`.
type LevelLit struct {
	span
	Value uint64
}

func (*LevelLit) exprNode() {}

// PatternHole is `?name`; valid only inside a rewrite rule's LHS. A bare
// `?` parses as Placeholder instead.
type PatternHole struct {
	span
	Name    string
	HasName bool
}

func (*PatternHole) exprNode() {}

// Placeholder is `_`, an inferred hole. A bare `?` not immediately followed
// by an identifier is also parsed as Placeholder (§ open question: outside
// a rewrite-rule LHS, an unnamed hole is a type-inferred hole, not a
// pattern variable — see DESIGN.md).
type Placeholder struct {
	span
}

func (*Placeholder) exprNode() {}

// DeclKind distinguishes the declaration forms of §6. A typed definition
// (`lhs : T = v`) is a DeclAssert that also carries a Value.
type DeclKind int

const (
	DeclAssert DeclKind = iota
	DeclUntypedDefine
	DeclRewriteRule
	DeclEqualityCheck
)

// Declaration is one top-level statement.
type Declaration struct {
	span
	Kind    DeclKind
	LHS     Expr
	Type    Expr // set iff Kind==DeclAssert and a type was given
	HasType bool
	Value   Expr // set for typed/untyped definitions, rewrite rules, and equality checks
	HasValue bool
}

// Program is a whole parsed source file.
type Program struct {
	Declarations []*Declaration
}
