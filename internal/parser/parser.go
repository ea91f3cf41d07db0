// Package parser implements the recursive-descent parser producing the raw
// AST (§1, §6). Like the lexer, it is a thin, mechanical collaborator: on
// any malformed construct it records a diagnostic and recovers at the next
// statement boundary (NEWLINE, ';', or EOF) so independent declarations
// later in the file still get a chance to parse (§7).
package parser

import (
	"strconv"

	"github.com/Hadron67/typechecker/internal/ast"
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/lexer"
	"github.com/Hadron67/typechecker/internal/token"
)

type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token
	errs diag.Bag
}

func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func spanOf(t token.Token) (int, int) { return t.Line, t.Column }

// spanner is satisfied by every *ast.<Node> the parser constructs.
type spanner interface {
	SetSpan(line, col int)
}

func setSpan(n spanner, line, col int) { n.SetSpan(line, col) }

func (p *Parser) errf(code diag.ErrorCode, format string, args ...interface{}) {
	p.errs.Addf(code, diag.Span{Line: p.cur.Line, Column: p.cur.Column}, format, args...)
}

// ParseProgram parses the whole input, returning the AST it could recover
// and every diagnostic hit along the way.
func (p *Parser) ParseProgram() (*ast.Program, []*diag.Diagnostic) {
	prog := &ast.Program{}
	for p.cur.Type != token.EOF {
		if p.cur.Type == token.NEWLINE || p.cur.Type == token.SEMI {
			p.advance()
			continue
		}
		decl, ok := p.parseDeclaration()
		if ok {
			prog.Declarations = append(prog.Declarations, decl)
		} else {
			p.recover()
		}
	}
	return prog, p.errs.Items()
}

// recover skips to the next statement boundary after a parse error.
func (p *Parser) recover() {
	for p.cur.Type != token.NEWLINE && p.cur.Type != token.SEMI && p.cur.Type != token.EOF {
		p.advance()
	}
	if p.cur.Type != token.EOF {
		p.advance()
	}
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) parseDeclaration() (*ast.Declaration, bool) {
	startLine, startCol := spanOf(p.cur)
	lhs, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	decl := &ast.Declaration{LHS: lhs}
	setSpan(decl, startLine, startCol)

	switch p.cur.Type {
	case token.COLON:
		p.advance()
		typ, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		decl.Kind = ast.DeclAssert
		decl.Type = typ
		decl.HasType = true
		if p.cur.Type == token.ASSIGN {
			p.advance()
			val, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			decl.Value = val
			decl.HasValue = true
		}
	case token.ASSIGN:
		p.advance()
		val, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		decl.Kind = ast.DeclUntypedDefine
		decl.Value = val
		decl.HasValue = true
	case token.DEFRULE:
		p.advance()
		val, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		decl.Kind = ast.DeclRewriteRule
		decl.Value = val
		decl.HasValue = true
	case token.EQUALCHECK:
		p.advance()
		val, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		decl.Kind = ast.DeclEqualityCheck
		decl.Value = val
		decl.HasValue = true
	default:
		p.errf(diag.CodeParseError, "expected ':', '=', ':=' or ':===' after declaration head, got %s", p.cur.Type)
		return nil, false
	}

	if p.cur.Type != token.NEWLINE && p.cur.Type != token.SEMI && p.cur.Type != token.EOF {
		p.errf(diag.CodeParseError, "expected end of declaration, got %s", p.cur.Type)
		return nil, false
	}
	return decl, true
}

// parseExpr parses a full expression (the arrow-level entry point).
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseArrow()
}

func (p *Parser) parseArrow() (ast.Expr, bool) {
	left, ok := p.parseApp()
	if !ok {
		return nil, false
	}
	// A newline ends the declaration unless the next line continues the
	// arrow chain with a leading '->'.
	if p.cur.Type == token.NEWLINE && p.peek.Type == token.ARROW {
		p.advance()
	}
	if p.cur.Type == token.ARROW {
		line, col := spanOf(p.cur)
		p.advance()
		p.skipNewlines()
		right, ok := p.parseArrow()
		if !ok {
			return nil, false
		}
		arrow := &ast.Arrow{Dependent: false, Input: left, Output: right}
		setSpan(arrow, line, col)
		return arrow, true
	}
	return left, true
}

func (p *Parser) parseApp() (ast.Expr, bool) {
	atom, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for p.cur.Type == token.LPAREN {
		line, col := spanOf(p.cur)
		p.advance()
		p.skipNewlines()
		var args []ast.Expr
		if p.cur.Type != token.RPAREN {
			for {
				arg, ok := p.parseExpr()
				if !ok {
					return nil, false
				}
				args = append(args, arg)
				p.skipNewlines()
				if p.cur.Type == token.COMMA {
					p.advance()
					p.skipNewlines()
					continue
				}
				break
			}
		}
		if p.cur.Type != token.RPAREN {
			p.errf(diag.CodeParseError, "expected ')' to close call, got %s", p.cur.Type)
			return nil, false
		}
		p.advance()
		app := &ast.Apply{Fn: atom, Args: args}
		setSpan(app, line, col)
		atom = app
	}
	return atom, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	line, col := spanOf(p.cur)
	switch p.cur.Type {
	case token.BACKSLASH:
		p.advance()
		if p.cur.Type != token.IDENT {
			p.errf(diag.CodeParseError, "expected parameter name after '\\', got %s", p.cur.Type)
			return nil, false
		}
		param := p.cur.Literal
		p.advance()
		body, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		lam := &ast.Lambda{Param: param, Body: body}
		setSpan(lam, line, col)
		return lam, true

	case token.LPAREN:
		p.advance()
		p.skipNewlines()
		if p.cur.Type == token.IDENT && p.peek.Type == token.COLON {
			name := p.cur.Literal
			p.advance() // consume ident
			p.advance() // consume ':'
			p.skipNewlines()
			input, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			p.skipNewlines()
			if p.cur.Type != token.RPAREN {
				p.errf(diag.CodeParseError, "expected ')' after dependent parameter type, got %s", p.cur.Type)
				return nil, false
			}
			p.advance()
			if p.cur.Type != token.ARROW {
				p.errf(diag.CodeParseError, "expected '->' after dependent parameter, got %s", p.cur.Type)
				return nil, false
			}
			p.advance()
			p.skipNewlines()
			output, ok := p.parseArrow()
			if !ok {
				return nil, false
			}
			arrow := &ast.Arrow{Dependent: true, ParamName: name, Input: input, Output: output}
			setSpan(arrow, line, col)
			return arrow, true
		}
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		p.skipNewlines()
		if p.cur.Type != token.RPAREN {
			p.errf(diag.CodeParseError, "expected ')', got %s", p.cur.Type)
			return nil, false
		}
		p.advance()
		return inner, true

	case token.KEYWORD_TYPE:
		p.advance()
		if p.cur.Type != token.LPAREN {
			p.errf(diag.CodeParseError, "expected '(' after 'type', got %s", p.cur.Type)
			return nil, false
		}
		p.advance()
		p.skipNewlines()
		sub, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		p.skipNewlines()
		if p.cur.Type != token.RPAREN {
			p.errf(diag.CodeParseError, "expected ')' to close 'type(...)', got %s", p.cur.Type)
			return nil, false
		}
		p.advance()
		u := &ast.Universe{Subscript: sub}
		setSpan(u, line, col)
		return u, true

	case token.LEVEL:
		lit := p.cur.Literal
		p.advance()
		n, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			p.errf(diag.CodeParseError, "invalid level literal %q", lit)
			return nil, false
		}
		l := &ast.LevelLit{Value: n}
		setSpan(l, line, col)
		return l, true

	case token.QUESTION:
		p.advance()
		if p.cur.Type == token.IDENT {
			name := p.cur.Literal
			p.advance()
			ph := &ast.PatternHole{Name: name, HasName: true}
			setSpan(ph, line, col)
			return ph, true
		}
		// A bare '?' outside a named hole is an inferred placeholder, the
		// same as '_' (§ open question, see DESIGN.md).
		pl := &ast.Placeholder{}
		setSpan(pl, line, col)
		return pl, true

	case token.IDENT:
		if p.cur.Literal == "_" {
			p.advance()
			pl := &ast.Placeholder{}
			setSpan(pl, line, col)
			return pl, true
		}
		parts := []string{p.cur.Literal}
		p.advance()
		for p.cur.Type == token.DOT {
			p.advance()
			if p.cur.Type != token.IDENT {
				p.errf(diag.CodeParseError, "expected identifier after '.', got %s", p.cur.Type)
				return nil, false
			}
			parts = append(parts, p.cur.Literal)
			p.advance()
		}
		id := &ast.Ident{Parts: parts}
		setSpan(id, line, col)
		return id, true

	default:
		p.errf(diag.CodeParseError, "unexpected token %s", p.cur.Type)
		return nil, false
	}
}
