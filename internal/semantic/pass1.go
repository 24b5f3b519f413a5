package semantic

import (
	"github.com/jialihong/rectangle/internal/ast"
	cerrors "github.com/jialihong/rectangle/internal/errors"
	"github.com/jialihong/rectangle/internal/types"
)

// analyzeComponentHeader registers a component's own scope and every
// symbol that doesn't require type-checking an expression: enum
// constants (sequential values starting at 0), properties (by
// declaration order), and method headers (name/return type/param types).
// Running this over every component before any body is type-checked lets
// property initializers and method bodies reference any sibling symbol
// regardless of declaration order; a dependency cycle is still caught
// later by the loop detector, so nothing is lost by being permissive here.
func (a *analyzer) analyzeComponentHeader(c *ast.ComponentDef) error {
	scope := NewSymbolTable()
	a.compScopes[c.Name] = scope

	for _, e := range c.Enums {
		for i, ec := range e.Constants {
			ec.Value = i
			if !scope.Define(&Symbol{Kind: KindEnumConst, Name: ec.Name, Type: types.IntType, Index: ec.Value}) {
				return cerrors.Semanticf(ec.Tok().Pos, "%q redefined in component %q", ec.Name, c.Name)
			}
		}
	}

	for i, p := range c.Properties {
		p.Owner = c
		p.Field = i
		if !scope.Define(&Symbol{Kind: KindProperty, Name: p.Name, Type: p.Type, Index: i}) {
			return cerrors.Semanticf(p.Tok().Pos, "%q redefined in component %q", p.Name, c.Name)
		}
	}

	for _, m := range c.Methods {
		m.Owner = c
		if !scope.Define(&Symbol{Kind: KindMethod, Name: m.Name, Type: m.ReturnType, Method: m}) {
			return cerrors.Semanticf(m.Tok().Pos, "%q redefined in component %q", m.Name, c.Name)
		}
	}

	return nil
}

// analyzeComponentBodies type-checks each property's initializer
// (recording property->property edges within the same component) and each
// method body.
func (a *analyzer) analyzeComponentBodies(c *ast.ComponentDef) error {
	scope := a.compScopes[c.Name].WithComponentScope(a.global)

	for _, p := range c.Properties {
		ck := newChecker(scope, a, checkerCtx{componentScope: true})
		ty, err := ck.checkExpr(p.Init)
		if err != nil {
			return err
		}
		if !types.AssignCompatible(p.Type, ty) {
			return cerrors.Semanticf(p.Init.Tok().Pos, "cannot initialize property %q of type %s with %s", p.Name, p.Type, ty)
		}
		for _, srcIdx := range ck.propertyReads {
			if srcIdx == p.Field {
				continue
			}
			c.PropEdges = append(c.PropEdges, ast.PropEdge{Dst: p.Field, Src: srcIdx})
		}
	}

	for _, m := range c.Methods {
		if err := a.analyzeMethodBody(c, m, scope); err != nil {
			return err
		}
	}

	return nil
}

func (a *analyzer) analyzeMethodBody(c *ast.ComponentDef, m *ast.FuncDecl, compScope *SymbolTable) error {
	fnScope := NewEnclosedSymbolTable(a.global).WithComponentScope(compScope)
	localCount := 1 // local 0 is the implicit self
	for i, p := range m.Params {
		p.Local = localCount
		localCount++
		if !fnScope.Define(&Symbol{Kind: KindParam, Name: p.Name, Type: p.Type, Index: p.Local}) {
			return cerrors.Semanticf(p.Tok().Pos, "parameter %q redefined (argument %d)", p.Name, i)
		}
	}

	ck := newChecker(fnScope, a, checkerCtx{inMethodBody: true})
	counter := &localCount
	if err := ck.checkBlock(m.Body, counter); err != nil {
		return err
	}
	m.LocalCount = *counter

	return a.checkReturnTypes(m)
}

// checkReturnTypes verifies every return statement's expression is
// compatible with the method's declared return type, including the
// synthesized trailing bare return for Void-returning methods.
func (a *analyzer) checkReturnTypes(m *ast.FuncDecl) error {
	var walk func(n ast.Node) error
	walk = func(n ast.Node) error {
		switch v := n.(type) {
		case *ast.ReturnStmt:
			var got types.Type
			if v.Value != nil {
				got = v.Value.Type()
			} else {
				got = types.VoidType
			}
			if !types.AssignCompatible(m.ReturnType, got) {
				return cerrors.Semanticf(v.Tok().Pos, "function %q returns %s, expected %s", m.Name, got, m.ReturnType)
			}
		case *ast.CompoundStmt:
			for _, item := range v.Items {
				if err := walk(item); err != nil {
					return err
				}
			}
		case *ast.IfStmt:
			if err := walk(v.Then); err != nil {
				return err
			}
			if v.Else != nil {
				if err := walk(v.Else); err != nil {
					return err
				}
			}
		case *ast.WhileStmt:
			return walk(v.Body)
		}
		return nil
	}
	return walk(m.Body)
}
