// Package types implements the language's type model (spec.md §4.3): a
// small tagged union with structural equality and the assignment
// compatibility rule used throughout the symbol pass.
package types

import "fmt"

// Category tags which kind of type a Type value holds.
type Category int

const (
	Invalid Category = iota
	Int
	Float
	String
	Void
	List
	Custom
)

func (c Category) String() string {
	switch c {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Void:
		return "void"
	case List:
		return "list"
	case Custom:
		return "custom"
	default:
		return "invalid"
	}
}

// Type is a value-copyable, structurally-comparable type descriptor.
// Elem is only meaningful for List; Name only for Custom.
type Type struct {
	Category Category
	Elem     *Type  // element type, for List
	Name     string // struct/component name, for Custom
}

var (
	IntType    = Type{Category: Int}
	FloatType  = Type{Category: Float}
	StringType = Type{Category: String}
	VoidType   = Type{Category: Void}
)

// NewList builds a List type with the given element type.
func NewList(elem Type) Type {
	e := elem
	return Type{Category: List, Elem: &e}
}

// NewCustom builds a Custom type naming a struct or component definition.
func NewCustom(name string) Type {
	return Type{Category: Custom, Name: name}
}

// String renders the type the way it would appear in a declaration or an
// error message.
func (t Type) String() string {
	switch t.Category {
	case List:
		if t.Elem == nil {
			return "list<?>"
		}
		return fmt.Sprintf("list<%s>", t.Elem.String())
	case Custom:
		return t.Name
	default:
		return t.Category.String()
	}
}

// Equal reports structural equality: same tag and, for List, recursively
// equal element types, or, for Custom, the same name.
func Equal(a, b Type) bool {
	if a.Category != b.Category {
		return false
	}
	switch a.Category {
	case List:
		if a.Elem == nil || b.Elem == nil {
			return a.Elem == b.Elem
		}
		return Equal(*a.Elem, *b.Elem)
	case Custom:
		return a.Name == b.Name
	default:
		return true
	}
}

// AssignCompatible reports whether a value of type src may be assigned to a
// destination of type dst: equal types, or src == Void (the wildcard used
// for built-in call parameters like print/len), or, for List destinations,
// a recursively compatible element type.
func AssignCompatible(dst, src Type) bool {
	if Equal(dst, src) {
		return true
	}
	if src.Category == Void {
		return true
	}
	if dst.Category == List && src.Category == List {
		if dst.Elem == nil || src.Elem == nil {
			return false
		}
		return AssignCompatible(*dst.Elem, *src.Elem)
	}
	return false
}

// IsNumeric reports whether t is Int or Float.
func (t Type) IsNumeric() bool {
	return t.Category == Int || t.Category == Float
}
