package parser

import (
	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/token"
)

func (p *Parser) blockItemFirst(k token.Kind) bool {
	return typeFirst(k) || p.statementFirst(k)
}

func (p *Parser) statementFirst(k token.Kind) bool {
	switch k {
	case token.LBRACE, token.IF, token.WHILE, token.CONTINUE, token.BREAK, token.RETURN,
		token.IDENT, token.STRING, token.INT, token.FLOAT, token.LPAREN:
		return true
	default:
		return false
	}
}

// parseCompoundStatement parses a `{ ... }` block whose items are each
// either a local declaration or a statement. The two alternatives share a
// type-or-identifier lookahead set, so disambiguation is by speculative
// trial parse (spec.md §4.2, the second of the two backtracking points).
func (p *Parser) parseCompoundStatement() *ast.CompoundStmt {
	tok := p.match(token.LBRACE)
	var items []ast.Node
	for p.blockItemFirst(p.c.cur().Kind) {
		items = append(items, p.parseBlockItem())
	}
	p.match(token.RBRACE)
	return ast.NewCompound(tok, items)
}

func (p *Parser) parseBlockItem() ast.Node {
	switch {
	case p.tryParse(p.tryStatement):
		return p.parseStatement()
	case p.tryParse(p.tryDeclaration):
		return p.parseDeclaration()
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect a declaration or statement, got %s(%q)", cur.Kind, cur.Literal)
		panic("unreachable")
	}
}

// tryParse runs fn speculatively: cursor position is restored and no AST
// nodes escape regardless of outcome. It reports whether fn parsed without
// error, for use as a one-token-class-ahead disambiguator.
func (p *Parser) tryParse(fn func()) (ok bool) {
	mark := p.c.mark()
	p.c.incTrying()
	defer func() {
		p.c.decTrying()
		p.c.reset(mark)
		if r := recover(); r != nil {
			if _, isParse := r.(parseError); isParse {
				ok = false
				return
			}
			panic(r)
		}
	}()
	fn()
	ok = true
	return
}

func (p *Parser) tryDeclaration() { p.parseDeclaration() }
func (p *Parser) tryStatement()   { p.parseStatement() }

// parseDeclaration parses a local variable declaration: Type name [: init];
func (p *Parser) parseDeclaration() *ast.DeclStmt {
	tok := p.c.cur()
	ty := p.parseType()
	name := p.match(token.IDENT).Literal
	var init ast.Expr
	if p.c.is(token.COLON) {
		p.c.advance()
		init = p.parseInitializer()
	}
	p.match(token.SEMI)
	return ast.NewDeclStmt(ast.NewVar(tok, name, ty, init))
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.c.cur().Kind {
	case token.LBRACE:
		return p.parseCompoundStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.BREAK:
		tok := p.match(token.BREAK)
		p.match(token.SEMI)
		return ast.NewBreak(tok)
	case token.CONTINUE:
		tok := p.match(token.CONTINUE)
		p.match(token.SEMI)
		return ast.NewContinue(tok)
	case token.RETURN:
		tok := p.match(token.RETURN)
		var val ast.Expr
		if p.expressionFirst(p.c.cur().Kind) {
			val = p.parseExpression()
		}
		p.match(token.SEMI)
		return ast.NewReturn(tok, val)
	case token.IDENT, token.STRING, token.INT, token.FLOAT, token.LPAREN:
		return p.parseExprStatement()
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect a statement, got %s(%q)", cur.Kind, cur.Literal)
		panic("unreachable")
	}
}

func (p *Parser) parseIfStatement() ast.Stmt {
	tok := p.match(token.IF)
	p.match(token.LPAREN)
	cond := p.parseExpression()
	p.match(token.RPAREN)
	then := p.parseCompoundStatement()
	var els *ast.CompoundStmt
	if p.c.is(token.ELSE) {
		p.c.advance()
		if p.c.is(token.LBRACE) {
			els = p.parseCompoundStatement()
		} else if p.c.is(token.IF) {
			innerTok := p.c.cur()
			inner := p.parseIfStatement()
			els = ast.NewCompound(innerTok, []ast.Node{inner})
		} else {
			cur := p.c.cur()
			p.fail(cur.Pos, "expect '{' or 'if' after else, got %s(%q)", cur.Kind, cur.Literal)
		}
	}
	return ast.NewIf(tok, cond, then, els)
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	tok := p.match(token.WHILE)
	p.match(token.LPAREN)
	cond := p.parseExpression()
	p.match(token.RPAREN)
	body := p.parseCompoundStatement()
	return ast.NewWhile(tok, cond, body)
}

// parseExprStatement parses `postfixExpression [= expression] ;`.
// Assignment binds only here, never inside parseExpression (spec.md §4.2);
// the lhs must be a postfix expression since the general unary/primary
// grammar is never an assignable target.
func (p *Parser) parseExprStatement() ast.Stmt {
	tok := p.c.cur()
	left := p.parsePostfix()
	if p.c.is(token.ASSIGN) {
		p.c.advance()
		right := p.parseExpression()
		p.match(token.SEMI)
		return ast.NewExprStmt(tok, ast.NewAssign(tok, left, right))
	}
	p.match(token.SEMI)
	return ast.NewExprStmt(tok, left)
}
