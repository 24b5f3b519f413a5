package parser

import (
	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/token"
)

func (p *Parser) memberItemFirst(k token.Kind) bool {
	switch k {
	case token.KW_INT, token.KW_VOID, token.KW_FLOAT, token.KW_STRING, token.KW_LIST, token.ENUM, token.IDENT:
		return true
	default:
		return false
	}
}

// parseComponentDefinition parses `def Name { memberItem* }`.
func (p *Parser) parseComponentDefinition() *ast.ComponentDef {
	tok := p.match(token.DEF)
	name := p.match(token.IDENT).Literal
	def := ast.NewComponentDef(tok, name)

	p.match(token.LBRACE)
	for p.memberItemFirst(p.c.cur().Kind) {
		p.parseMemberItem(def)
	}
	p.match(token.RBRACE)
	return def
}

// parseMemberItem parses one enum, property, or method declaration.
// Property and method declarations share the same "Type Ident" lookahead
// prefix, so the choice between them is made by a speculative trial parse
// of parsePropertyDefinition before falling back to
// parseFunctionDefinition (spec.md §4.2, the first of the two backtracking
// points).
func (p *Parser) parseMemberItem(def *ast.ComponentDef) {
	switch {
	case p.c.is(token.ENUM):
		e := p.parseEnumDefinition()
		def.Enums = append(def.Enums, e)
	case p.tryParse(p.tryPropertyDefinition):
		prop := p.parsePropertyDefinition()
		prop.Owner = def
		prop.Field = len(def.Properties)
		def.Properties = append(def.Properties, prop)
	case p.tryParse(p.tryFunctionDefinition):
		fn := p.parseFunctionDefinition()
		fn.Owner = def
		def.Methods = append(def.Methods, fn)
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect an enum, property, or method declaration, got %s(%q)", cur.Kind, cur.Literal)
	}
}

func (p *Parser) tryPropertyDefinition() { p.parsePropertyDefinition() }
func (p *Parser) tryFunctionDefinition() { p.parseFunctionDefinition() }

// parsePropertyDefinition parses `Type name : initializer ;`.
func (p *Parser) parsePropertyDefinition() *ast.PropertyDecl {
	tok := p.c.cur()
	ty := p.parsePropertyType()
	name := p.match(token.IDENT).Literal
	p.match(token.COLON)
	init := p.parseInitializer()
	p.match(token.SEMI)
	return ast.NewProperty(tok, name, ty, init)
}

// parseFunctionDefinition parses `Type name ( params? ) { body }`. If the
// body's last statement isn't a return, one is synthesized (spec.md §4.2
// "An empty function body must end with an explicit return").
func (p *Parser) parseFunctionDefinition() *ast.FuncDecl {
	tok := p.c.cur()
	ret := p.parseType()
	name := p.match(token.IDENT).Literal

	p.match(token.LPAREN)
	var params []*ast.ParamDecl
	if typeFirst(p.c.cur().Kind) {
		params = p.parseParamList()
	}
	p.match(token.RPAREN)

	body := p.parseCompoundStatement()
	if !endsInReturn(body) {
		body.Items = append(body.Items, ast.NewReturn(tok, nil))
	}

	return ast.NewFunc(tok, name, ret, params, body)
}

func endsInReturn(body *ast.CompoundStmt) bool {
	if len(body.Items) == 0 {
		return false
	}
	_, ok := body.Items[len(body.Items)-1].(*ast.ReturnStmt)
	return ok
}

func (p *Parser) parseParamList() []*ast.ParamDecl {
	params := []*ast.ParamDecl{p.parseParamItem()}
	for p.c.is(token.COMMA) {
		p.c.advance()
		params = append(params, p.parseParamItem())
	}
	return params
}

func (p *Parser) parseParamItem() *ast.ParamDecl {
	tok := p.c.cur()
	ty := p.parseType()
	name := p.match(token.IDENT).Literal
	return ast.NewParam(tok, name, ty)
}

// parseEnumDefinition parses `enum Name { c1, c2, ... }`. Constant values
// are sequential (0, 1, 2, ...) and assigned during the symbol pass, not
// here (spec.md's grammar has no `= value` syntax for enum constants).
func (p *Parser) parseEnumDefinition() *ast.EnumDecl {
	tok := p.match(token.ENUM)
	name := p.match(token.IDENT).Literal

	p.match(token.LBRACE)
	consts := []*ast.EnumConstDecl{p.parseEnumConstant()}
	for p.c.is(token.COMMA) {
		p.c.advance()
		consts = append(consts, p.parseEnumConstant())
	}
	p.match(token.RBRACE)

	return ast.NewEnum(tok, name, consts)
}

func (p *Parser) parseEnumConstant() *ast.EnumConstDecl {
	tok := p.match(token.IDENT)
	return ast.NewEnumConst(tok, tok.Literal)
}
