package parser

import (
	"strconv"

	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/token"
)

// parseExpression is the grammar's top: logical-or with no assignment
// (assignment only appears at statement level, spec.md §4.2).
func (p *Parser) parseExpression() ast.Expr {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.c.is(token.OR) {
		tok := p.c.advance()
		right := p.parseLogicalAnd()
		left = ast.NewBinary(tok, ast.OpOr, left, right)
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.c.is(token.AND) {
		tok := p.c.advance()
		right := p.parseEquality()
		left = ast.NewBinary(tok, ast.OpAnd, left, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.c.isAny(token.EQ, token.NEQ) {
		tok := p.c.advance()
		op := ast.OpEq
		if tok.Kind == token.NEQ {
			op = ast.OpNe
		}
		right := p.parseRelational()
		left = ast.NewBinary(tok, op, left, right)
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.c.isAny(token.LT, token.GT, token.LE, token.GE) {
		tok := p.c.advance()
		var op ast.BinOp
		switch tok.Kind {
		case token.LT:
			op = ast.OpLt
		case token.GT:
			op = ast.OpGt
		case token.LE:
			op = ast.OpLe
		case token.GE:
			op = ast.OpGe
		}
		right := p.parseAdditive()
		left = ast.NewBinary(tok, op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.c.isAny(token.PLUS, token.MINUS) {
		tok := p.c.advance()
		op := ast.OpAdd
		if tok.Kind == token.MINUS {
			op = ast.OpSub
		}
		right := p.parseMultiplicative()
		left = ast.NewBinary(tok, op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.c.isAny(token.STAR, token.SLASH, token.PERCENT) {
		tok := p.c.advance()
		var op ast.BinOp
		switch tok.Kind {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		}
		right := p.parseUnary()
		left = ast.NewBinary(tok, op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.postfixFirst(p.c.cur().Kind) {
		return p.parsePostfix()
	}
	if p.c.isAny(token.PLUS, token.MINUS, token.NOT) {
		tok := p.c.advance()
		var op ast.UnaryOp
		switch tok.Kind {
		case token.PLUS:
			op = ast.UnaryPos
		case token.MINUS:
			op = ast.UnaryNeg
		case token.NOT:
			op = ast.UnaryNot
		}
		operand := p.parseUnary()
		return ast.NewUnary(tok, op, operand)
	}
	cur := p.c.cur()
	p.fail(cur.Pos, "expect a unary expression, got %s(%q)", cur.Kind, cur.Literal)
	panic("unreachable")
}

func (p *Parser) postfixFirst(k token.Kind) bool {
	switch k {
	case token.IDENT, token.STRING, token.INT, token.FLOAT, token.LPAREN:
		return true
	default:
		return false
	}
}

// parsePostfix parses a primary expression followed by any chain of
// call/subscript/member suffixes, left-associatively.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for p.c.isAny(token.LBRACKET, token.LPAREN, token.DOT) {
		switch p.c.cur().Kind {
		case token.LBRACKET:
			tok := p.c.advance()
			idx := p.parseExpression()
			p.match(token.RBRACKET)
			expr = ast.NewIndex(tok, expr, idx)
		case token.LPAREN:
			tok := p.c.advance()
			var args []ast.Expr
			if p.initializerFirst(p.c.cur().Kind) {
				args = p.parseArgumentList()
			}
			p.match(token.RPAREN)
			expr = ast.NewCall(tok, expr, args)
		case token.DOT:
			tok := p.c.advance()
			name := p.match(token.IDENT).Literal
			expr = ast.NewMember(tok, expr, name)
		}
	}
	return expr
}

func (p *Parser) expressionFirst(k token.Kind) bool {
	switch k {
	case token.IDENT, token.STRING, token.INT, token.FLOAT, token.LPAREN, token.PLUS, token.MINUS, token.NOT:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.c.cur().Kind {
	case token.IDENT:
		tok := p.c.advance()
		return ast.NewRef(tok, tok.Literal)
	case token.STRING:
		tok := p.c.advance()
		return ast.NewStringLit(tok, tok.Literal)
	case token.INT:
		tok := p.c.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			p.fail(tok.Pos, "invalid integer literal %q", tok.Literal)
		}
		return ast.NewIntLit(tok, int32(v))
	case token.FLOAT:
		tok := p.c.advance()
		v, err := strconv.ParseFloat(tok.Literal, 32)
		if err != nil {
			p.fail(tok.Pos, "invalid float literal %q", tok.Literal)
		}
		return ast.NewFloatLit(tok, float32(v))
	case token.LPAREN:
		p.c.advance()
		inner := p.parseExpression()
		p.match(token.RPAREN)
		return inner
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect identifier, literal, or '(', got %s(%q)", cur.Kind, cur.Literal)
		panic("unreachable")
	}
}

func (p *Parser) parseArgumentList() []ast.Expr {
	args := []ast.Expr{p.parseInitializer()}
	for p.c.is(token.COMMA) {
		p.c.advance()
		args = append(args, p.parseInitializer())
	}
	return args
}

// parseInitializer parses either an expression or a brace-delimited,
// possibly-empty, possibly-nested initializer list (spec.md §4.2).
func (p *Parser) parseInitializer() ast.Expr {
	if p.expressionFirst(p.c.cur().Kind) {
		return p.parseExpression()
	}
	if p.c.is(token.LBRACE) {
		tok := p.c.advance()
		var elems []ast.Expr
		if p.initializerFirst(p.c.cur().Kind) {
			elems = p.parseInitializerList()
		}
		p.match(token.RBRACE)
		return ast.NewInitList(tok, elems)
	}
	cur := p.c.cur()
	p.fail(cur.Pos, "expect an initializer, got %s(%q)", cur.Kind, cur.Literal)
	panic("unreachable")
}

func (p *Parser) initializerFirst(k token.Kind) bool {
	return p.expressionFirst(k) || k == token.LBRACE
}

func (p *Parser) parseInitializerList() []ast.Expr {
	elems := []ast.Expr{p.parseInitializer()}
	for p.c.is(token.COMMA) {
		p.c.advance()
		elems = append(elems, p.parseInitializer())
	}
	return elems
}
