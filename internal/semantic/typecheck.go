package semantic

import (
	"github.com/jialihong/rectangle/internal/ast"
	cerrors "github.com/jialihong/rectangle/internal/errors"
	"github.com/jialihong/rectangle/internal/types"
)

// propRef is one property cell a checked expression read, tagged with the
// instance that owns it. propRefs are recorded only while checking a
// binding value (phase 2); reads made while checking a component's own
// property initializer (phase 1) are recorded as bare field indices in
// propertyReads instead.
type propRef struct {
	instanceID string
	propIndex  int
}

// checkerCtx selects which dependency bookkeeping applies to the expression
// being checked.
type checkerCtx struct {
	componentScope bool // checking a property initializer (phase 1)
	bindingScope   bool // checking a binding's value expression (phase 2)
	inMethodBody   bool
	selfInstanceID string // set alongside bindingScope: the instance owning the binding
}

// checker type-checks one expression tree (or method body) against a scope,
// annotating every node's ResolvedType and recording property/binding reads
// along the way.
type checker struct {
	scope *SymbolTable
	a     *analyzer
	ctx   checkerCtx

	propertyReads []int
	crossRefs     []propRef

	loopDepth int
}

func newChecker(scope *SymbolTable, a *analyzer, ctx checkerCtx) *checker {
	return &checker{scope: scope, a: a, ctx: ctx}
}

func isNumeric(t types.Type) bool { return t.Category == types.Int || t.Category == types.Float }

func findProperty(c *ast.ComponentDef, name string) (*ast.PropertyDecl, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func findMethod(c *ast.ComponentDef, name string) (*ast.FuncDecl, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

func findEnumConst(c *ast.ComponentDef, name string) (*ast.EnumConstDecl, bool) {
	for _, e := range c.Enums {
		for _, ec := range e.Constants {
			if ec.Name == name {
				return ec, true
			}
		}
	}
	return nil, false
}

func (ck *checker) checkExpr(e ast.Expr) (types.Type, error) {
	switch v := e.(type) {
	case *ast.IntLit:
		v.SetType(types.IntType)
		return types.IntType, nil
	case *ast.FloatLit:
		v.SetType(types.FloatType)
		return types.FloatType, nil
	case *ast.StringLit:
		v.SetType(types.StringType)
		return types.StringType, nil
	case *ast.InitListExpr:
		for _, el := range v.Elements {
			if _, err := ck.checkExpr(el); err != nil {
				return types.Type{}, err
			}
		}
		// An init-list has no fixed type of its own; Void makes it
		// assign-compatible with whatever struct or list it lands in.
		v.SetType(types.VoidType)
		return types.VoidType, nil
	case *ast.BinaryExpr:
		return ck.checkBinary(v)
	case *ast.UnaryExpr:
		return ck.checkUnary(v)
	case *ast.CallExpr:
		return ck.checkCall(v)
	case *ast.IndexExpr:
		return ck.checkIndex(v)
	case *ast.MemberExpr:
		return ck.checkMember(v)
	case *ast.RefExpr:
		return ck.checkRef(v)
	case *ast.AssignExpr:
		return ck.checkAssign(v)
	default:
		return types.Type{}, cerrors.Semanticf(e.Tok().Pos, "internal: unexpected expression node %T", e)
	}
}

func (ck *checker) checkBinary(v *ast.BinaryExpr) (types.Type, error) {
	lt, err := ck.checkExpr(v.Left)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := ck.checkExpr(v.Right)
	if err != nil {
		return types.Type{}, err
	}

	var result types.Type
	switch v.Op {
	case ast.OpAnd, ast.OpOr:
		if lt.Category != types.Int || rt.Category != types.Int {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "operator %s requires int operands, got %s and %s", v.Op, lt, rt)
		}
		result = types.IntType
	case ast.OpEq, ast.OpNe:
		if !types.Equal(lt, rt) {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "operator %s requires equal-typed operands, got %s and %s", v.Op, lt, rt)
		}
		result = types.IntType
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		if !types.Equal(lt, rt) || !isNumeric(lt) {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "operator %s requires equal numeric operands, got %s and %s", v.Op, lt, rt)
		}
		result = types.IntType
	case ast.OpAdd:
		if !types.Equal(lt, rt) || (!isNumeric(lt) && lt.Category != types.String) {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "operator + requires equal int, float or string operands, got %s and %s", lt, rt)
		}
		result = lt
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		if !types.Equal(lt, rt) || !isNumeric(lt) {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "operator %s requires equal numeric operands, got %s and %s", v.Op, lt, rt)
		}
		result = lt
	case ast.OpMod:
		if lt.Category != types.Int || rt.Category != types.Int {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "operator %% requires int operands, got %s and %s", lt, rt)
		}
		result = types.IntType
	default:
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "internal: unknown binary operator %v", v.Op)
	}
	v.SetType(result)
	return result, nil
}

func (ck *checker) checkUnary(v *ast.UnaryExpr) (types.Type, error) {
	t, err := ck.checkExpr(v.Operand)
	if err != nil {
		return types.Type{}, err
	}
	switch v.Op {
	case ast.UnaryPos, ast.UnaryNeg:
		if !isNumeric(t) {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "unary %s requires an int or float operand, got %s", v.Op, t)
		}
		v.SetType(t)
		return t, nil
	case ast.UnaryNot:
		if t.Category != types.Int {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "unary ! requires an int operand, got %s", t)
		}
		v.SetType(types.IntType)
		return types.IntType, nil
	default:
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "internal: unknown unary operator %v", v.Op)
	}
}

func (ck *checker) checkIndex(v *ast.IndexExpr) (types.Type, error) {
	lt, err := ck.checkExpr(v.List)
	if err != nil {
		return types.Type{}, err
	}
	if lt.Category != types.List || lt.Elem == nil {
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "cannot subscript non-list type %s", lt)
	}
	it, err := ck.checkExpr(v.Index)
	if err != nil {
		return types.Type{}, err
	}
	if it.Category != types.Int {
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "list index must be int, got %s", it)
	}
	v.SetType(*lt.Elem)
	return *lt.Elem, nil
}

func (ck *checker) checkAssign(v *ast.AssignExpr) (types.Type, error) {
	switch v.Target.(type) {
	case *ast.RefExpr, *ast.MemberExpr, *ast.IndexExpr:
	default:
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "invalid assignment target")
	}
	lt, err := ck.checkExpr(v.Target)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := ck.checkExpr(v.Value)
	if err != nil {
		return types.Type{}, err
	}
	switch lt.Category {
	case types.Int, types.Float, types.String, types.List:
	default:
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "cannot assign to a value of type %s", lt)
	}
	if !types.AssignCompatible(lt, rt) {
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "cannot assign %s to %s", rt, lt)
	}
	v.SetType(types.VoidType)
	return types.VoidType, nil
}

func (ck *checker) checkRef(v *ast.RefExpr) (types.Type, error) {
	sym, ok := ck.scope.Lookup(v.Name)
	if !ok {
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "No symbol named %q", v.Name)
	}
	v.Resolved = sym

	switch sym.Kind {
	case KindProperty:
		if ck.ctx.componentScope || ck.ctx.bindingScope {
			ck.propertyReads = append(ck.propertyReads, sym.Index)
		}
	case KindMethod, KindStruct:
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "%q is not a value", v.Name)
	}

	v.SetType(sym.Type)
	return sym.Type, nil
}

func (ck *checker) checkCall(v *ast.CallExpr) (types.Type, error) {
	ref, ok := v.Callee.(*ast.RefExpr)
	if !ok {
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "call target must be a function or method name")
	}
	sym, found := ck.scope.Lookup(ref.Name)
	if !found {
		return types.Type{}, cerrors.Semanticf(ref.Tok().Pos, "No symbol named %q", ref.Name)
	}
	ref.Resolved = sym

	switch sym.Kind {
	case KindBuiltinFunc:
		ref.SetType(sym.Type)
		if ref.Name == "len" {
			if len(v.Args) != 1 {
				return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "len expects exactly one argument, got %d", len(v.Args))
			}
			at, err := ck.checkExpr(v.Args[0])
			if err != nil {
				return types.Type{}, err
			}
			// Void is an init-list literal passed directly.
			if at.Category != types.List && at.Category != types.String && at.Category != types.Void {
				return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "len expects a list or string argument, got %s", at)
			}
			v.SetType(types.IntType)
			return types.IntType, nil
		}
		for _, arg := range v.Args {
			if _, err := ck.checkExpr(arg); err != nil {
				return types.Type{}, err
			}
		}
		v.SetType(sym.Type)
		return sym.Type, nil

	case KindMethod:
		m := sym.Method
		ref.SetType(m.ReturnType)
		if len(v.Args) != len(m.Params) {
			return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "%q expects %d argument(s), got %d", ref.Name, len(m.Params), len(v.Args))
		}
		for i, arg := range v.Args {
			at, err := ck.checkExpr(arg)
			if err != nil {
				return types.Type{}, err
			}
			if !types.AssignCompatible(m.Params[i].Type, at) {
				return types.Type{}, cerrors.Semanticf(arg.Tok().Pos, "argument %d of %q: cannot use %s as %s", i+1, ref.Name, at, m.Params[i].Type)
			}
		}
		v.SetType(m.ReturnType)
		return m.ReturnType, nil

	default:
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "%q is not callable", ref.Name)
	}
}

func (ck *checker) checkMember(v *ast.MemberExpr) (types.Type, error) {
	recvType, err := ck.checkExpr(v.Receiver)
	if err != nil {
		return types.Type{}, err
	}
	if recvType.Category != types.Custom {
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "cannot access %q on non-component type %s", v.Name, recvType)
	}

	if comp, ok := ck.a.components[recvType.Name]; ok {
		if p, idx, found := findIndexedProperty(comp, v.Name); found {
			v.SetType(p.Type)
			ck.recordMemberPropertyRead(v, idx)
			return p.Type, nil
		}
		if ec, found := findEnumConst(comp, v.Name); found {
			v.SetType(types.IntType)
			_ = ec
			return types.IntType, nil
		}
		if m, found := findMethod(comp, v.Name); found {
			v.SetType(m.ReturnType)
			return m.ReturnType, nil
		}
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "No symbol named %q on component %q", v.Name, recvType.Name)
	}

	if st, ok := ck.a.structs[recvType.Name]; ok {
		for _, f := range st.Fields {
			if f.Name == v.Name {
				v.SetType(f.Type)
				return f.Type, nil
			}
		}
		return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "No symbol named %q on struct %q", v.Name, recvType.Name)
	}

	return types.Type{}, cerrors.Semanticf(v.Tok().Pos, "unknown type %q", recvType.Name)
}

func findIndexedProperty(c *ast.ComponentDef, name string) (*ast.PropertyDecl, int, bool) {
	p, ok := findProperty(c, name)
	if !ok {
		return nil, 0, false
	}
	return p, p.Field, true
}

// recordMemberPropertyRead has an effect only while checking a binding
// value (phase 2): it turns `<ref>.<prop>` into a binding->binding edge when ref
// resolves to an instance (self, a sibling by id, or `parent`).
func (ck *checker) recordMemberPropertyRead(v *ast.MemberExpr, propIdx int) {
	if !ck.ctx.bindingScope {
		return
	}
	ref, ok := v.Receiver.(*ast.RefExpr)
	if !ok {
		return
	}
	sym, ok := ref.Resolved.(*Symbol)
	if !ok || sym.Kind != KindInstance {
		return
	}
	instID := sym.Name
	if sym.Instance != nil {
		instID = sym.Instance.InstanceID
	}
	ck.crossRefs = append(ck.crossRefs, propRef{instanceID: instID, propIndex: propIdx})
}

func (ck *checker) checkBlock(cs *ast.CompoundStmt, localCount *int) error {
	for _, item := range cs.Items {
		if err := ck.checkStmt(item, localCount); err != nil {
			return err
		}
	}
	return nil
}

func (ck *checker) checkStmt(n ast.Node, localCount *int) error {
	switch s := n.(type) {
	case *ast.DeclStmt:
		if s.Var.Init != nil {
			t, err := ck.checkExpr(s.Var.Init)
			if err != nil {
				return err
			}
			if !types.AssignCompatible(s.Var.Type, t) {
				return cerrors.Semanticf(s.Var.Tok().Pos, "cannot initialize %q of type %s with %s", s.Var.Name, s.Var.Type, t)
			}
		}
		s.Var.Local = *localCount
		*localCount++
		if !ck.scope.Define(&Symbol{Kind: KindLocal, Name: s.Var.Name, Type: s.Var.Type, Index: s.Var.Local}) {
			return cerrors.Semanticf(s.Var.Tok().Pos, "%q redefined", s.Var.Name)
		}
		return nil

	case *ast.IfStmt:
		ct, err := ck.checkExpr(s.Cond)
		if err != nil {
			return err
		}
		if ct.Category != types.Int {
			return cerrors.Semanticf(s.Cond.Tok().Pos, "if condition must be int, got %s", ct)
		}
		if err := ck.checkBlock(s.Then, localCount); err != nil {
			return err
		}
		if s.Else != nil {
			return ck.checkBlock(s.Else, localCount)
		}
		return nil

	case *ast.WhileStmt:
		ct, err := ck.checkExpr(s.Cond)
		if err != nil {
			return err
		}
		if ct.Category != types.Int {
			return cerrors.Semanticf(s.Cond.Tok().Pos, "while condition must be int, got %s", ct)
		}
		ck.loopDepth++
		err = ck.checkBlock(s.Body, localCount)
		ck.loopDepth--
		return err

	case *ast.BreakStmt:
		if ck.loopDepth == 0 {
			return cerrors.Semanticf(s.Tok().Pos, "break outside of a loop")
		}
		return nil

	case *ast.ContinueStmt:
		if ck.loopDepth == 0 {
			return cerrors.Semanticf(s.Tok().Pos, "continue outside of a loop")
		}
		return nil

	case *ast.ReturnStmt:
		if s.Value != nil {
			if _, err := ck.checkExpr(s.Value); err != nil {
				return err
			}
		}
		return nil

	case *ast.ExprStmt:
		_, err := ck.checkExpr(s.X)
		return err

	default:
		return cerrors.Semanticf(n.Tok().Pos, "internal: unexpected statement node %T", n)
	}
}
