package parser

import (
	"github.com/jialihong/rectangle/internal/token"
	"github.com/jialihong/rectangle/internal/types"
)

// parsePropertyType parses a property/field type: int, float, string, or
// list<T>. Unlike parseType, it excludes void and custom (identifier) types
// (spec.md §4.2's memberItem grammar never binds a property to those).
func (p *Parser) parsePropertyType() types.Type {
	switch p.c.cur().Kind {
	case token.KW_INT:
		p.c.advance()
		return types.IntType
	case token.KW_FLOAT:
		p.c.advance()
		return types.FloatType
	case token.KW_STRING:
		p.c.advance()
		return types.StringType
	case token.KW_LIST:
		return p.parseListType()
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect a type token, got %s(%q)", cur.Kind, cur.Literal)
		panic("unreachable")
	}
}

// parseType parses a full type: everything parsePropertyType accepts, plus
// void and identifier (Custom) types. Used for var/param/return types.
func (p *Parser) parseType() types.Type {
	switch p.c.cur().Kind {
	case token.KW_VOID:
		p.c.advance()
		return types.VoidType
	case token.IDENT:
		name := p.c.advance().Literal
		return types.NewCustom(name)
	case token.KW_INT, token.KW_FLOAT, token.KW_STRING, token.KW_LIST:
		return p.parsePropertyType()
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect a type token, got %s(%q)", cur.Kind, cur.Literal)
		panic("unreachable")
	}
}

func (p *Parser) parseListType() types.Type {
	p.match(token.KW_LIST)
	p.match(token.LT)
	elem := p.parsePropertyType()
	p.match(token.GT)
	return types.NewList(elem)
}

// typeFirst is the full type grammar's FIRST set, used to dispatch
// declarations and parameter lists.
func typeFirst(k token.Kind) bool {
	switch k {
	case token.KW_INT, token.KW_FLOAT, token.KW_STRING, token.KW_LIST, token.KW_VOID, token.IDENT:
		return true
	default:
		return false
	}
}

// propertyTypeFirst is parsePropertyType's FIRST set.
func propertyTypeFirst(k token.Kind) bool {
	switch k {
	case token.KW_INT, token.KW_FLOAT, token.KW_STRING, token.KW_LIST:
		return true
	default:
		return false
	}
}
