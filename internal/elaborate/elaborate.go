// Package elaborate implements the elaborator front-end (§4.6): it walks
// the parsed AST in a declare pass (creating the symbol hierarchy each
// declaration's left-hand side names) followed by a convert-and-constrain
// pass (converting AST to core terms and seeding the solver's queue).
package elaborate

import (
	"fmt"

	"github.com/Hadron67/typechecker/internal/ast"
	"github.com/Hadron67/typechecker/internal/config"
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/parser"
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/solve"
	"github.com/Hadron67/typechecker/internal/term"
)

// Result is the outcome of one Elaborate call.
type Result struct {
	Diagnostics []*diag.Diagnostic
}

// Elaborator holds the permanent registry it mutates and the per-run
// scratch/solver pair. It is reusable across successive source inputs,
// matching §5's "shared-resource policy" (the permanent registry persists;
// only newly-created symbols from a failed run are rolled back).
type Elaborator struct {
	reg    *registry.Registry
	scratch *registry.Scratch
	solver  *solve.Solver
	diags   diag.Bag

	created    []term.Handle
	createdSet map[term.Handle]bool

	patternsParent term.Handle
	localsParent   term.Handle
	localCounter   int
	patternCounter int
}

// New opens an elaborator over reg, creating the hidden parents that host
// binder locals and rewrite-rule pattern symbols (§4.6, §9 "rewrite-rule
// hygiene"). Names starting with '<' can never collide with a surface
// identifier (identifiers must start with a letter), which is what keeps
// these parents invisible to ordinary dotted-name lookup.
func New(reg *registry.Registry) *Elaborator {
	e := &Elaborator{reg: reg, createdSet: make(map[term.Handle]bool)}
	e.patternsParent, _ = reg.CreateChild(term.NoHandle, false, "<patterns>", true)
	e.localsParent, _ = reg.CreateChild(term.NoHandle, false, "<locals>", true)
	return e
}

// Elaborate parses and elaborates one source file's worth of declarations.
// On any diagnostic, every permanent symbol created during this call is
// removed (§5, §7). Rewrite rules appended to a symbol that existed before
// the call are not removed, and the registry's handle counter is not reset.
func (e *Elaborator) Elaborate(src string) *Result {
	e.diags = diag.Bag{}
	e.created = nil
	e.createdSet = make(map[term.Handle]bool)

	p := parser.New(src)
	prog, parseErrs := p.ParseProgram()
	for _, d := range parseErrs {
		e.diags.Add(d)
	}
	if !e.diags.Empty() {
		return &Result{Diagnostics: e.diags.Items()}
	}

	e.scratch = registry.NewScratch(e.reg)
	e.solver = solve.New(e.scratch, config.DefaultMaxIterations)

	skip := e.declarePass(prog)
	for i, decl := range prog.Declarations {
		if skip[i] {
			continue
		}
		e.convertDeclaration(decl)
	}

	for _, d := range e.solver.Run() {
		e.diags.Add(d)
	}

	if !e.diags.Empty() {
		for _, h := range e.created {
			e.reg.Remove(h)
		}
	}

	return &Result{Diagnostics: e.diags.Items()}
}

// headIdentPath extracts the dotted-name path rooted at the head of expr,
// descending through any wrapping Apply nodes to find the base Ident (the
// `Nat.ind` in `Nat.ind(a, b)`).
func headIdentPath(expr ast.Expr) ([]string, bool) {
	switch v := expr.(type) {
	case *ast.Ident:
		return v.Parts, true
	case *ast.Apply:
		return headIdentPath(v.Fn)
	default:
		return nil, false
	}
}

// declarePass creates or looks up the target symbol hierarchy for every
// declaration's left-hand side (§4.6 step 1), returning which declarations
// cannot proceed to conversion because their head is already defined.
func (e *Elaborator) declarePass(prog *ast.Program) []bool {
	skip := make([]bool, len(prog.Declarations))
	for i, decl := range prog.Declarations {
		parts, ok := headIdentPath(decl.LHS)
		if !ok {
			continue
		}
		leaf, wasNew := e.createOrLookupPath(parts)

		_, isPlainIdent := decl.LHS.(*ast.Ident)
		declaresSymbol := isPlainIdent && (decl.Kind == ast.DeclAssert || decl.Kind == ast.DeclUntypedDefine)
		if !declaresSymbol {
			continue
		}
		if !wasNew && !e.createdSet[leaf] {
			e.diags.Addf(diag.CodeRedefinition, decl.Span(), "%s is already defined", e.reg.Stringify(leaf))
			skip[i] = true
			continue
		}
		e.solver.Unlock(leaf)
	}
	return skip
}

// createOrLookupPath walks a dotted path from the root, creating any
// missing component. Every newly-created handle — including intermediate
// parents auto-vivified along the way, like `Nat` while declaring
// `Nat.zero` — is tracked for rollback, but only the path's final
// component is a candidate for being "this declaration's symbol": the
// caller decides whether that matters.
func (e *Elaborator) createOrLookupPath(parts []string) (term.Handle, bool) {
	cur := term.NoHandle
	hasParent := false
	var h term.Handle
	var wasNew bool
	for _, part := range parts {
		h, wasNew = e.reg.CreateChild(cur, hasParent, part, false)
		if wasNew {
			e.created = append(e.created, h)
			e.createdSet[h] = true
		}
		cur = h
		hasParent = true
	}
	return cur, wasNew
}

func (e *Elaborator) newLocal(name string) term.Handle {
	e.localCounter++
	h, _ := e.reg.CreateChild(e.localsParent, true, fmt.Sprintf("%s~%d", name, e.localCounter), true)
	e.created = append(e.created, h)
	e.createdSet[h] = true
	return h
}

func (e *Elaborator) newPattern(name string) term.Handle {
	e.patternCounter++
	h, _ := e.reg.CreateChild(e.patternsParent, true, fmt.Sprintf("%s~%d", name, e.patternCounter), true)
	e.created = append(e.created, h)
	e.createdSet[h] = true
	return h
}
