// Package ast defines the Abstract Syntax Tree produced by the parser
// (spec.md §3 "AST nodes") and annotated in place by the semantic pass with
// resolved types and symbol back-references.
package ast

import (
	"github.com/jialihong/rectangle/internal/token"
	"github.com/jialihong/rectangle/internal/types"
)

// Node is implemented by every AST node; it anchors diagnostics to a
// source token.
type Node interface {
	Tok() token.Token
}

// Expr is any expression node. ResolvedType is zero until the semantic pass
// type-checks the expression.
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is any declaration node (var, field, property, param, func/method,
// enum, struct, component definition/instance).
type Decl interface {
	Node
	declNode()
}

// base embeds the source token every node carries for diagnostics.
type base struct {
	Token token.Token
}

func (b base) Tok() token.Token { return b.Token }

// typedBase adds the resolved-type slot shared by every expression.
type typedBase struct {
	base
	ResolvedType types.Type
}

func (t *typedBase) Type() types.Type      { return t.ResolvedType }
func (t *typedBase) SetType(ty types.Type) { t.ResolvedType = ty }

// Token0 is the zero token used to anchor AST nodes synthesized by the
// compiler itself (built-in struct fields, the synthesized main function)
// rather than parsed from source.
func Token0() token.Token {
	return token.Token{}
}
