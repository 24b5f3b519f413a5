package ast

import "github.com/jialihong/rectangle/internal/token"
import "github.com/jialihong/rectangle/internal/types"

func (*VarDecl) declNode()       {}
func (*FieldDecl) declNode()     {}
func (*PropertyDecl) declNode()  {}
func (*ParamDecl) declNode()     {}
func (*FuncDecl) declNode()      {}
func (*EnumDecl) declNode()      {}
func (*EnumConstDecl) declNode() {}
func (*StructDecl) declNode()    {}
func (*ComponentDef) declNode()  {}
func (*ComponentInstance) declNode() {}

// VarDecl is a local variable declaration, optionally initialized.
type VarDecl struct {
	base
	Name    string
	Type    types.Type
	Init    Expr // nil when uninitialized
	Local   int  // assigned by the symbol pass
}

// FieldDecl is one struct member.
type FieldDecl struct {
	base
	Name  string
	Type  types.Type
	Field int // declaration order
}

// PropertyDecl is a component property: typed, with a default initializer
// evaluated when no instance binds it.
type PropertyDecl struct {
	base
	Name      string
	Type      types.Type
	Init      Expr
	Owner     *ComponentDef // back-reference, set by the symbol pass
	Field     int           // declaration order
}

// ParamDecl is a function/method parameter.
type ParamDecl struct {
	base
	Name  string
	Type  types.Type
	Local int
}

// FuncDecl is a function or method declaration. Owner is nil for a
// free-standing function and set for a component method; methods receive
// an implicit self parameter at local index 0 (spec.md §4.4).
type FuncDecl struct {
	base
	Name       string
	ReturnType types.Type
	Params     []*ParamDecl
	Body       *CompoundStmt
	Owner      *ComponentDef
	LocalCount int // args + locals, filled by the symbol pass
}

// EnumConstDecl is one member of an enum, with its sequential int value.
type EnumConstDecl struct {
	base
	Name  string
	Value int
}

// EnumDecl declares a named set of int-valued constants, scoped to the
// owning component.
type EnumDecl struct {
	base
	Name      string
	Constants []*EnumConstDecl
}

// StructDecl is a named struct type with ordered fields.
type StructDecl struct {
	base
	Name   string
	Fields []*FieldDecl
}

// PropEdge is a property -> property dependency discovered while analyzing
// a component's own property initializers (spec.md §4.5 phase 1). It is
// later promoted to every instance of the component.
type PropEdge struct {
	Dst int // field index of the property being assigned
	Src int // field index of the property read in its initializer
}

// ComponentDef is a named type with typed properties, methods, and enums
// (the GLOSSARY's "Component definition").
type ComponentDef struct {
	base
	Name       string
	Properties []*PropertyDecl
	Methods    []*FuncDecl
	Enums      []*EnumDecl
	PropEdges  []PropEdge // per-component property dependency edges
}

// Binding is `<propName>: <expr>` inside an instance, assigning a property
// for that instance only (GLOSSARY "Binding").
type Binding struct {
	base
	Name          string
	Value         Expr
	PropertyIndex int // resolved field index on the owning component
}

// ComponentInstance is a concrete placement of a component in the scene
// tree (GLOSSARY "Component instance").
type ComponentInstance struct {
	base
	ComponentName string
	Bindings      []*Binding
	Children      []*ComponentInstance
	Parent        *ComponentInstance // weak back-reference; nil for the root

	Component *ComponentDef // resolved by the symbol pass

	InstanceIndex int    // pre-order index, assigned by the symbol pass
	TreeSize      int    // subtree instance count, including self
	InstanceID    string // explicit `id:` binding, or synthetic "#<index>"
}

func NewVar(tok token.Token, name string, ty types.Type, init Expr) *VarDecl {
	return &VarDecl{base: base{Token: tok}, Name: name, Type: ty, Init: init}
}
func NewField(tok token.Token, name string, ty types.Type, idx int) *FieldDecl {
	return &FieldDecl{base: base{Token: tok}, Name: name, Type: ty, Field: idx}
}
func NewProperty(tok token.Token, name string, ty types.Type, init Expr) *PropertyDecl {
	return &PropertyDecl{base: base{Token: tok}, Name: name, Type: ty, Init: init}
}
func NewParam(tok token.Token, name string, ty types.Type) *ParamDecl {
	return &ParamDecl{base: base{Token: tok}, Name: name, Type: ty}
}
func NewFunc(tok token.Token, name string, ret types.Type, params []*ParamDecl, body *CompoundStmt) *FuncDecl {
	return &FuncDecl{base: base{Token: tok}, Name: name, ReturnType: ret, Params: params, Body: body}
}
func NewEnum(tok token.Token, name string, consts []*EnumConstDecl) *EnumDecl {
	return &EnumDecl{base: base{Token: tok}, Name: name, Constants: consts}
}
func NewStruct(tok token.Token, name string, fields []*FieldDecl) *StructDecl {
	return &StructDecl{base: base{Token: tok}, Name: name, Fields: fields}
}
func NewComponentDef(tok token.Token, name string) *ComponentDef {
	return &ComponentDef{base: base{Token: tok}, Name: name}
}
func NewComponentInstance(tok token.Token, componentName string) *ComponentInstance {
	return &ComponentInstance{base: base{Token: tok}, ComponentName: componentName}
}
func NewEnumConst(tok token.Token, name string) *EnumConstDecl {
	return &EnumConstDecl{base: base{Token: tok}, Name: name}
}
func NewBinding(tok token.Token, name string, value Expr) *Binding {
	return &Binding{base: base{Token: tok}, Name: name, Value: value}
}
