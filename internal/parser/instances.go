package parser

import (
	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/token"
)

// parseComponentInstance parses `Name { bindingItem* }`.
func (p *Parser) parseComponentInstance() *ast.ComponentInstance {
	tok := p.match(token.IDENT)
	name := tok.Literal
	inst := ast.NewComponentInstance(tok, name)

	p.match(token.LBRACE)
	for p.c.is(token.IDENT) {
		p.parseBindingItem(inst)
	}
	p.match(token.RBRACE)
	return inst
}

// parseBindingItem parses one `name : initializer` binding or one nested
// child instance. Both alternatives start with IDENT, so the choice is a
// single token of lookahead after consuming the name: ':' commits to a
// binding, '{' un-reads the name and re-enters parseComponentInstance so
// the child rule consumes it as its own type name (spec.md §4.2).
func (p *Parser) parseBindingItem(inst *ast.ComponentInstance) {
	tok := p.match(token.IDENT)
	name := tok.Literal

	switch p.c.cur().Kind {
	case token.COLON:
		p.c.advance()
		value := p.parseInitializer()
		b := ast.NewBinding(tok, name, value)
		inst.Bindings = append(inst.Bindings, b)
	case token.LBRACE:
		p.c.unread()
		child := p.parseComponentInstance()
		child.Parent = inst
		inst.Children = append(inst.Children, child)
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect ':' or '{' after identifier, got %s(%q)", cur.Kind, cur.Literal)
	}
}
