// Package semantic implements the three-phase symbol/type pass described in
// spec.md §4.5: component definitions and their property dependency edges,
// the instance tree with binding resolution, and the topological
// member-init ordering that combines both edge sets.
package semantic

import (
	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/types"
)

// Kind tags what a Symbol names.
type Kind int

const (
	KindField Kind = iota
	KindProperty
	KindParam
	KindLocal
	KindMethod
	KindBuiltinFunc
	KindEnumConst
	KindInstance
	KindStruct
	KindComponent
)

// Symbol is one named entity visible in a scope. Which of the back-reference
// fields is populated depends on Kind.
type Symbol struct {
	Kind  Kind
	Name  string
	Type  types.Type
	Index int // field/property/param/local slot, or enum constant value

	Struct    *ast.StructDecl
	Component *ast.ComponentDef
	Method    *ast.FuncDecl
	Instance  *ast.ComponentInstance
}

// SymbolTable is one lexical scope. outer is the enclosing scope; component
// is a secondary fallback link consulted after the outer chain is
// exhausted. Instance scopes and method scopes point it at their
// component's scope, so binding values and method bodies resolve the
// component's names; a component scope points it at the global scope. It is
// not limited to instance scopes.
type SymbolTable struct {
	symbols   map[string]*Symbol
	outer     *SymbolTable
	component *SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable creates a scope nested inside outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	st := NewSymbolTable()
	st.outer = outer
	return st
}

// WithComponentScope sets the component-scope fallback link (see
// SymbolTable); it must never be called with a scope that would create a
// cycle (the global scope never has this link set).
func (st *SymbolTable) WithComponentScope(comp *SymbolTable) *SymbolTable {
	st.component = comp
	return st
}

// Define adds sym to this scope. It reports false if the name is already
// bound in this scope (shadowing an outer scope's name is allowed).
func (st *SymbolTable) Define(sym *Symbol) bool {
	if _, exists := st.symbols[sym.Name]; exists {
		return false
	}
	st.symbols[sym.Name] = sym
	return true
}

// Lookup searches this scope, then its enclosing scopes, and finally — if
// nothing was found along that chain — the component-scope fallback (which
// performs its own ordinary chain search).
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for s := st; s != nil; s = s.outer {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	if st.component != nil {
		return st.component.Lookup(name)
	}
	return nil, false
}

// LookupLocal searches only this scope, with no chain walk.
func (st *SymbolTable) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}
