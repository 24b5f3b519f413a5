package ast

import "github.com/jialihong/rectangle/internal/token"

func (*IntLit) exprNode()      {}
func (*FloatLit) exprNode()    {}
func (*StringLit) exprNode()   {}
func (*InitListExpr) exprNode() {}
func (*BinaryExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*CallExpr) exprNode()    {}
func (*IndexExpr) exprNode()   {}
func (*MemberExpr) exprNode()  {}
func (*RefExpr) exprNode()     {}
func (*AssignExpr) exprNode()  {}

// IntLit is an integer literal, e.g. 42.
type IntLit struct {
	typedBase
	Value int32
}

// FloatLit is a floating-point literal, e.g. 3.5.
type FloatLit struct {
	typedBase
	Value float32
}

// StringLit is a string literal.
type StringLit struct {
	typedBase
	Value string
}

// InitListExpr is `{ e1, e2, ... }` or `{}`, accepted only at initializer
// positions (spec.md §4.2).
type InitListExpr struct {
	typedBase
	Elements []Expr
}

// BinOp enumerates the binary operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// BinaryExpr is a left-associative binary operation; the parser folds
// operator chains bottom-up so every BinaryExpr is already left-leaning.
type BinaryExpr struct {
	typedBase
	Op    BinOp
	Left  Expr
	Right Expr
}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	UnaryPos UnaryOp = iota
	UnaryNeg
	UnaryNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPos:
		return "+"
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return "?"
	}
}

// UnaryExpr is a prefix unary operation.
type UnaryExpr struct {
	typedBase
	Op      UnaryOp
	Operand Expr
}

// CallExpr is a function or method call: Callee(Args...).
type CallExpr struct {
	typedBase
	Callee Expr
	Args   []Expr
}

// IndexExpr is a list subscript: List[Index].
type IndexExpr struct {
	typedBase
	List  Expr
	Index Expr
}

// MemberExpr is `.` field/property/enum-constant access on a Custom-typed
// receiver.
type MemberExpr struct {
	typedBase
	Receiver Expr
	Name     string
}

// AssignExpr is `target = value`, valid only at statement level; Target must
// be a RefExpr, MemberExpr, or IndexExpr (an lvalue). Kept distinct from
// BinaryExpr so the arithmetic/comparison operator set never has to special
// case assignment (spec.md §4.6 lvalue compilation).
type AssignExpr struct {
	typedBase
	Target Expr
	Value  Expr
}

func NewAssign(tok token.Token, target, value Expr) *AssignExpr {
	return &AssignExpr{typedBase: newTyped(tok), Target: target, Value: value}
}

// RefExpr is a bare identifier reference, resolved during the symbol pass
// to a Variable, Parameter, InstanceId, EnumConstant, Property, etc.
type RefExpr struct {
	typedBase
	Name string

	// Resolved is filled in by the symbol pass; its dynamic type tells the
	// code emitter how to compile a read/write of this ref (self-property
	// vs. instance-id vs. local).
	Resolved any
}

func newTyped(tok token.Token) typedBase {
	return typedBase{base: base{Token: tok}}
}

func NewIntLit(tok token.Token, v int32) *IntLit       { return &IntLit{typedBase: newTyped(tok), Value: v} }
func NewFloatLit(tok token.Token, v float32) *FloatLit { return &FloatLit{typedBase: newTyped(tok), Value: v} }
func NewStringLit(tok token.Token, v string) *StringLit {
	return &StringLit{typedBase: newTyped(tok), Value: v}
}
func NewInitList(tok token.Token, elems []Expr) *InitListExpr {
	return &InitListExpr{typedBase: newTyped(tok), Elements: elems}
}
func NewBinary(tok token.Token, op BinOp, l, r Expr) *BinaryExpr {
	return &BinaryExpr{typedBase: newTyped(tok), Op: op, Left: l, Right: r}
}
func NewUnary(tok token.Token, op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{typedBase: newTyped(tok), Op: op, Operand: operand}
}
func NewCall(tok token.Token, callee Expr, args []Expr) *CallExpr {
	return &CallExpr{typedBase: newTyped(tok), Callee: callee, Args: args}
}
func NewIndex(tok token.Token, list, index Expr) *IndexExpr {
	return &IndexExpr{typedBase: newTyped(tok), List: list, Index: index}
}
func NewMember(tok token.Token, recv Expr, name string) *MemberExpr {
	return &MemberExpr{typedBase: newTyped(tok), Receiver: recv, Name: name}
}
func NewRef(tok token.Token, name string) *RefExpr {
	return &RefExpr{typedBase: newTyped(tok), Name: name}
}
