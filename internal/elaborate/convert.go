package elaborate

import (
	"github.com/Hadron67/typechecker/internal/ast"
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/solve"
	"github.com/Hadron67/typechecker/internal/term"
)

// exprCtx tracks the identifier-resolution scopes live while converting one
// declaration (§4.6: binder args, then the declaration's pattern-variable
// set, then the root). There is no nested-declaration construct in this
// grammar, so "enclosing lexical scopes of enclosing declarations" collapses
// to just these two layers plus the root.
type exprCtx struct {
	binderNames    []string
	binderHandles  []term.Handle
	patternVars    map[string]term.Handle
	patterns       map[term.Handle]struct{}
	collectingPatterns bool
}

func newExprCtx() *exprCtx {
	return &exprCtx{
		patternVars: make(map[string]term.Handle),
		patterns:    make(map[term.Handle]struct{}),
	}
}

func (c *exprCtx) pushBinder(name string, h term.Handle) {
	c.binderNames = append(c.binderNames, name)
	c.binderHandles = append(c.binderHandles, h)
}

func (c *exprCtx) popBinder() {
	c.binderNames = c.binderNames[:len(c.binderNames)-1]
	c.binderHandles = c.binderHandles[:len(c.binderHandles)-1]
}

func (c *exprCtx) lookupBinder(name string) (term.Handle, bool) {
	for i := len(c.binderNames) - 1; i >= 0; i-- {
		if c.binderNames[i] == name {
			return c.binderHandles[i], true
		}
	}
	return term.NoHandle, false
}

// convertDeclaration converts one declaration's LHS/type/RHS to core terms
// and seeds the solver (§4.6 step 2).
func (e *Elaborator) convertDeclaration(decl *ast.Declaration) {
	ctx := newExprCtx()
	span := decl.Span()

	var lhs term.Term
	var ok bool
	if decl.Kind == ast.DeclRewriteRule {
		ctx.collectingPatterns = true
		lhs, ok = e.convertExpr(decl.LHS, ctx)
		ctx.collectingPatterns = false
	} else {
		lhs, ok = e.convertExpr(decl.LHS, ctx)
	}
	if !ok {
		return
	}

	var typeTerm term.Term
	if decl.HasType {
		typeTerm, ok = e.convertExpr(decl.Type, ctx)
		if !ok {
			return
		}
		lvl := term.Symbol{Handle: e.scratch.Fresh("lvl", false)}
		e.solver.Post(solve.Constraint{Kind: solve.KindType, Left: typeTerm, Right: term.Universe{Subscript: lvl}, Span: span})
	} else {
		typeTerm = term.Symbol{Handle: e.scratch.Fresh("ty", false)}
	}
	e.solver.Post(solve.Constraint{Kind: solve.KindType, Left: lhs, Right: typeTerm, Span: span})

	if !decl.HasValue {
		return
	}
	rhs, ok := e.convertExpr(decl.Value, ctx)
	if !ok {
		return
	}

	switch decl.Kind {
	case ast.DeclEqualityCheck:
		e.solver.Post(solve.Constraint{Kind: solve.KindEqual, Left: lhs, Right: rhs, Span: span})

	case ast.DeclRewriteRule:
		call, isCall := lhs.(term.Call)
		if !isCall {
			e.diags.Addf(diag.CodeInvalidRewriteRuleLHS, span, "rewrite rule left-hand side must be a call")
			return
		}
		head, isSymbol := call.Fn.(term.Symbol)
		if !isSymbol {
			e.diags.Addf(diag.CodeInvalidRewriteRuleLHS, span, "rewrite rule left-hand side head must be a symbol")
			return
		}
		entry := e.reg.MustEntry(head.Handle)
		entry.Info.DownValue = append(entry.Info.DownValue, registry.Rule{Patterns: ctx.patterns, Lhs: lhs, Rhs: rhs})

	default: // DeclAssert, DeclUntypedDefine
		if sym, isSymbol := lhs.(term.Symbol); isSymbol {
			entry := e.reg.MustEntry(sym.Handle)
			if !entry.Info.HasOwnValue() {
				entry.Info.OwnValue = rhs
				return
			}
		}
		e.solver.Post(solve.Constraint{Kind: solve.KindEqual, Left: lhs, Right: rhs, Span: span})
	}
}

func (e *Elaborator) convertExpr(expr ast.Expr, ctx *exprCtx) (term.Term, bool) {
	switch v := expr.(type) {
	case *ast.Ident:
		return e.convertIdent(v, ctx)
	case *ast.Apply:
		return e.convertApply(v, ctx)
	case *ast.Lambda:
		return e.convertLambda(v, ctx)
	case *ast.Arrow:
		return e.convertArrow(v, ctx)
	case *ast.Universe:
		return e.convertUniverse(v, ctx)
	case *ast.LevelLit:
		return term.Level{Value: v.Value}, true
	case *ast.PatternHole:
		return e.convertPatternHole(v, ctx)
	case *ast.Placeholder:
		return term.Symbol{Handle: e.scratch.Fresh("_", false)}, true
	default:
		panic("elaborate: unhandled AST node in convertExpr")
	}
}

func (e *Elaborator) convertIdent(id *ast.Ident, ctx *exprCtx) (term.Term, bool) {
	if len(id.Parts) == 1 {
		name := id.Parts[0]
		if h, ok := ctx.lookupBinder(name); ok {
			return term.Symbol{Handle: h}, true
		}
		if h, ok := ctx.patternVars[name]; ok {
			return term.Symbol{Handle: h}, true
		}
		if h, ok := e.reg.Lookup(term.NoHandle, false, name); ok {
			return term.Symbol{Handle: h}, true
		}
		e.diags.Addf(diag.CodeIdentifierNotFound, id.Span(), "identifier not found: %s", name)
		return nil, false
	}

	cur := term.NoHandle
	hasParent := false
	for _, part := range id.Parts {
		h, ok := e.reg.Lookup(cur, hasParent, part)
		if !ok {
			e.diags.Addf(diag.CodeIdentifierNotFound, id.Span(), "identifier not found: %s", part)
			return nil, false
		}
		cur = h
		hasParent = true
	}
	return term.Symbol{Handle: cur}, true
}

func (e *Elaborator) convertApply(app *ast.Apply, ctx *exprCtx) (term.Term, bool) {
	fn, ok := e.convertExpr(app.Fn, ctx)
	if !ok {
		return nil, false
	}
	if len(app.Args) == 0 {
		// The grammar allows an empty argument list; since CALL requires a
		// non-empty Args (§3 invariant), a nullary call degenerates to its
		// head (§9 open question: undocumented by spec.md, resolved here).
		return fn, true
	}
	args := make([]term.Term, len(app.Args))
	for i, a := range app.Args {
		ca, ok := e.convertExpr(a, ctx)
		if !ok {
			return nil, false
		}
		args[i] = ca
	}
	return term.Call{Fn: fn, Args: args}, true
}

func (e *Elaborator) convertLambda(lam *ast.Lambda, ctx *exprCtx) (term.Term, bool) {
	local := e.newLocal(lam.Param)
	ctx.pushBinder(lam.Param, local)
	body, ok := e.convertExpr(lam.Body, ctx)
	ctx.popBinder()
	if !ok {
		return nil, false
	}
	return term.Lambda{Arg: local, Body: body}, true
}

func (e *Elaborator) convertArrow(arrow *ast.Arrow, ctx *exprCtx) (term.Term, bool) {
	input, ok := e.convertExpr(arrow.Input, ctx)
	if !ok {
		return nil, false
	}
	if !arrow.Dependent {
		output, ok := e.convertExpr(arrow.Output, ctx)
		if !ok {
			return nil, false
		}
		return term.FnType{InputType: input, OutputType: output, HasArg: false}, true
	}
	local := e.newLocal(arrow.ParamName)
	ctx.pushBinder(arrow.ParamName, local)
	output, ok := e.convertExpr(arrow.Output, ctx)
	ctx.popBinder()
	if !ok {
		return nil, false
	}
	return term.FnType{InputType: input, OutputType: output, Arg: local, HasArg: true}, true
}

// convertUniverse converts `type(L)`. When L surface-converts to a bare,
// still-untyped temp metavariable (the `?` in `type(?)`), its type is
// pinned to LEVEL_TYPE immediately: invariant 4 (§3) already fixes what
// kind of term a universe's subscript must be, so there is no need to wait
// for the solver to discover it the long way around via a posted
// constraint.
func (e *Elaborator) convertUniverse(u *ast.Universe, ctx *exprCtx) (term.Term, bool) {
	sub, ok := e.convertExpr(u.Subscript, ctx)
	if !ok {
		return nil, false
	}
	if sym, isSymbol := sub.(term.Symbol); isSymbol && e.scratch.IsTemp(sym.Handle) {
		entry := e.scratch.MustEntry(sym.Handle)
		if !entry.Info.HasType() {
			entry.Info.Type = term.LevelType{}
		}
	}
	return term.Universe{Subscript: sub}, true
}

func (e *Elaborator) convertPatternHole(ph *ast.PatternHole, ctx *exprCtx) (term.Term, bool) {
	if !ctx.collectingPatterns {
		e.diags.Addf(diag.CodeInvalidRewriteRuleLHS, ph.Span(), "pattern hole '?%s' is only valid in a rewrite rule's left-hand side", ph.Name)
		return nil, false
	}
	if h, ok := ctx.patternVars[ph.Name]; ok {
		ctx.patterns[h] = struct{}{}
		return term.Pattern{Variable: h, HasVariable: true}, true
	}
	h := e.newPattern(ph.Name)
	ctx.patternVars[ph.Name] = h
	ctx.patterns[h] = struct{}{}
	return term.Pattern{Variable: h, HasVariable: true}, true
}
