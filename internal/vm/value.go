package vm

import "strconv"

// Kind tags which variant of Value is live.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindStruct
	KindList
)

// Value is the VM's tagged-union stack cell. Struct and List carry a
// pointer so that aliasing (two locals referencing the same instance, or
// the peek-mutate fstore/vappend convention) falls out of ordinary Go
// pointer semantics instead of needing an explicit borrow/owned model.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	Str    string
	Struct *StructValue
	List   *ListValue
}

// StructValue backs both a component instance and a built-in shape struct:
// a fixed-size, index-addressed field array.
type StructValue struct {
	Fields []Value
}

// ListValue backs a dynamic list value.
type ListValue struct {
	Elems []Value
}

func IntValue(i int64) Value      { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func StructOf(n int) Value        { return Value{Kind: KindStruct, Struct: &StructValue{Fields: make([]Value, n)}} }
func ListOf(v []Value) Value      { return Value{Kind: KindList, List: &ListValue{Elems: v}} }

func (v Value) Truthy() bool { return v.Int != 0 }

// String renders a Value the way the `print` opcode writes it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindList:
		return "<list>"
	case KindStruct:
		return "<struct>"
	default:
		return "<nil>"
	}
}
