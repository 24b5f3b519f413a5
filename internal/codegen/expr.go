package codegen

import (
	"strconv"

	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/semantic"
	"github.com/jialihong/rectangle/internal/types"
)

// emitExpr compiles e as an rvalue: by the time this returns, exactly one
// value has been pushed onto the operand stack.
func (g *gen) emitExpr(e ast.Expr, ctx exprCtx) error {
	switch v := e.(type) {
	case *ast.IntLit:
		g.emit1("iconst", int(v.Value))
		return nil
	case *ast.FloatLit:
		g.emit1s("fconst", strconv.FormatFloat(float64(v.Value), 'g', -1, 32))
		return nil
	case *ast.StringLit:
		g.emit1s("sconst", strconv.Quote(v.Value))
		return nil
	case *ast.InitListExpr:
		g.emit0("vector")
		for _, el := range v.Elements {
			if err := g.emitExpr(el, ctx); err != nil {
				return err
			}
			g.emit0("vappend")
		}
		return nil
	case *ast.BinaryExpr:
		return g.emitBinary(v, ctx)
	case *ast.UnaryExpr:
		return g.emitUnary(v, ctx)
	case *ast.RefExpr:
		return g.emitRef(v, ctx)
	case *ast.MemberExpr:
		return g.emitMember(v, ctx)
	case *ast.IndexExpr:
		if err := g.emitExpr(v.List, ctx); err != nil {
			return err
		}
		if err := g.emitExpr(v.Index, ctx); err != nil {
			return err
		}
		g.emit0("vload")
		return nil
	case *ast.CallExpr:
		return g.emitCall(v, ctx)
	case *ast.AssignExpr:
		return g.emitAssign(v, ctx)
	default:
		return internalErr(e, "codegen: unhandled expression %T", e)
	}
}

func category(e ast.Expr) types.Category { return e.Type().Category }

func (g *gen) emitBinary(v *ast.BinaryExpr, ctx exprCtx) error {
	if err := g.emitExpr(v.Left, ctx); err != nil {
		return err
	}
	if err := g.emitExpr(v.Right, ctx); err != nil {
		return err
	}

	cat := category(v.Left)
	switch v.Op {
	case ast.OpAdd:
		switch cat {
		case types.String:
			g.emit0("sadd")
		case types.Float:
			g.emit0("fadd")
		default:
			g.emit0("iadd")
		}
	case ast.OpSub:
		g.emit0(pick(cat, "fsub", "isub"))
	case ast.OpMul:
		g.emit0(pick(cat, "fmul", "imul"))
	case ast.OpDiv:
		g.emit0(pick(cat, "fdiv", "idiv"))
	case ast.OpMod:
		g.emit0("irem")
	case ast.OpAnd:
		g.emit0("iand")
	case ast.OpOr:
		g.emit0("ior")
	case ast.OpEq:
		switch cat {
		case types.String:
			g.emit0("seq")
		case types.Float:
			g.emit0("feq")
		default:
			g.emit0("ieq")
		}
	case ast.OpNe:
		switch cat {
		case types.String:
			g.emit0("sne")
		case types.Float:
			g.emit0("fne")
		default:
			g.emit0("ine")
		}
	case ast.OpLt:
		g.emit0(pick(cat, "flt", "ilt"))
	case ast.OpGt:
		g.emit0(pick(cat, "fgt", "igt"))
	case ast.OpLe:
		g.emit0(pick(cat, "fle", "ile"))
	case ast.OpGe:
		g.emit0(pick(cat, "fge", "ige"))
	default:
		return internalErr(v, "codegen: unhandled binary operator %v", v.Op)
	}
	return nil
}

func pick(cat types.Category, whenFloat, otherwise string) string {
	if cat == types.Float {
		return whenFloat
	}
	return otherwise
}

func (g *gen) emitUnary(v *ast.UnaryExpr, ctx exprCtx) error {
	if err := g.emitExpr(v.Operand, ctx); err != nil {
		return err
	}
	switch v.Op {
	case ast.UnaryPos:
		// no-op: unary + does not change the value
	case ast.UnaryNeg:
		g.emit0(pick(category(v.Operand), "fneg", "ineg"))
	case ast.UnaryNot:
		g.emit0("inot")
	default:
		return internalErr(v, "codegen: unhandled unary operator %v", v.Op)
	}
	return nil
}

// emitRef compiles a bare identifier read. Its symbol kind (resolved by the
// semantic pass) decides between a local/param load, a self-property load
// (lload <self>; fload <idx>), an instance-id load, or an enum constant
// push.
func (g *gen) emitRef(v *ast.RefExpr, ctx exprCtx) error {
	sym, ok := v.Resolved.(*semantic.Symbol)
	if !ok {
		return internalErr(v, "codegen: %q has no resolved symbol", v.Name)
	}
	switch sym.Kind {
	case semantic.KindLocal, semantic.KindParam:
		g.emit1("lload", sym.Index)
	case semantic.KindProperty:
		g.emit1("lload", ctx.selfLocal)
		g.emit1("fload", sym.Index)
	case semantic.KindInstance:
		g.emit1("lload", sym.Instance.InstanceIndex)
	case semantic.KindEnumConst:
		g.emit1("iconst", sym.Index)
	default:
		return internalErr(v, "codegen: %q is not a readable value (%v)", v.Name, sym.Kind)
	}
	return nil
}

// emitMember compiles `<instanceRef>.<name>`: every Custom-typed receiver in
// this language is an instance reference (properties/lists/strings never
// nest another Custom value inside them), so the receiver is always a bare
// RefExpr resolved to KindInstance.
func (g *gen) emitMember(v *ast.MemberExpr, ctx exprCtx) error {
	ref, ok := v.Receiver.(*ast.RefExpr)
	if !ok {
		return internalErr(v, "codegen: member receiver must be an instance reference")
	}
	sym, ok := ref.Resolved.(*semantic.Symbol)
	if !ok || sym.Kind != semantic.KindInstance {
		return internalErr(v, "codegen: member receiver %q does not resolve to an instance", ref.Name)
	}
	comp := sym.Instance.Component

	if p, found := findProperty(comp, v.Name); found {
		g.emit1("lload", sym.Instance.InstanceIndex)
		g.emit1("fload", p.Field)
		return nil
	}
	for _, e := range comp.Enums {
		for _, ec := range e.Constants {
			if ec.Name == v.Name {
				g.emit1("iconst", ec.Value)
				return nil
			}
		}
	}
	return internalErr(v, "codegen: %q has no property or enum constant %q", comp.Name, v.Name)
}

// emitAssign compiles `target = value` as a pure side effect: per spec.md
// §4.8 there is no dup opcode, so assignment-as-expression never leaves a
// value on the stack. Callers that need the statement form (ExprStmt) must
// not emit a trailing pop after an AssignExpr.
func (g *gen) emitAssign(v *ast.AssignExpr, ctx exprCtx) error {
	switch t := v.Target.(type) {
	case *ast.RefExpr:
		sym, ok := t.Resolved.(*semantic.Symbol)
		if !ok {
			return internalErr(t, "codegen: %q has no resolved symbol", t.Name)
		}
		switch sym.Kind {
		case semantic.KindLocal, semantic.KindParam:
			if err := g.emitExpr(v.Value, ctx); err != nil {
				return err
			}
			g.emit1("lstore", sym.Index)
		case semantic.KindProperty:
			g.emit1("lload", ctx.selfLocal)
			if err := g.emitExpr(v.Value, ctx); err != nil {
				return err
			}
			g.emit1("fstore", sym.Index)
			// fstore leaves the struct it wrote through on top of the
			// stack (so a run of fstores can build up a multi-field
			// struct); a single-field property write has no further use
			// for it.
			g.emit0("pop")
		default:
			return internalErr(t, "codegen: %q is not an assignable value", t.Name)
		}

	case *ast.MemberExpr:
		ref, ok := t.Receiver.(*ast.RefExpr)
		if !ok {
			return internalErr(t, "codegen: member assignment receiver must be an instance reference")
		}
		sym, ok := ref.Resolved.(*semantic.Symbol)
		if !ok || sym.Kind != semantic.KindInstance {
			return internalErr(t, "codegen: member assignment receiver %q is not an instance", ref.Name)
		}
		p, found := findProperty(sym.Instance.Component, t.Name)
		if !found {
			return internalErr(t, "codegen: %q has no property %q", sym.Instance.Component.Name, t.Name)
		}
		g.emit1("lload", sym.Instance.InstanceIndex)
		if err := g.emitExpr(v.Value, ctx); err != nil {
			return err
		}
		g.emit1("fstore", p.Field)
		g.emit0("pop")

	case *ast.IndexExpr:
		if err := g.emitExpr(t.List, ctx); err != nil {
			return err
		}
		if err := g.emitExpr(t.Index, ctx); err != nil {
			return err
		}
		if err := g.emitExpr(v.Value, ctx); err != nil {
			return err
		}
		g.emit0("vstore")

	default:
		return internalErr(v, "codegen: invalid assignment target %T", v.Target)
	}
	return nil
}

// emitCall compiles a call. The semantic pass rejects every CallExpr whose
// callee is not a bare identifier, so this never has to handle a method
// call through an explicit receiver.
func (g *gen) emitCall(v *ast.CallExpr, ctx exprCtx) error {
	ref := v.Callee.(*ast.RefExpr)
	sym, ok := ref.Resolved.(*semantic.Symbol)
	if !ok {
		return internalErr(v, "codegen: call target %q has no resolved symbol", ref.Name)
	}

	switch sym.Kind {
	case semantic.KindBuiltinFunc:
		return g.emitBuiltinCall(ref.Name, v, ctx)
	case semantic.KindMethod:
		g.emit1("lload", ctx.selfLocal)
		for _, arg := range v.Args {
			if err := g.emitExpr(arg, ctx); err != nil {
				return err
			}
		}
		g.emit1s("call", mangledMethodName(sym.Method.Owner, sym.Method))
		return nil
	default:
		return internalErr(v, "codegen: %q is not callable", ref.Name)
	}
}

func (g *gen) emitBuiltinCall(name string, v *ast.CallExpr, ctx exprCtx) error {
	if name == "len" {
		if err := g.emitExpr(v.Args[0], ctx); err != nil {
			return err
		}
		g.emit0("len")
		return nil
	}
	if name == "print" {
		for _, arg := range v.Args {
			if err := g.emitExpr(arg, ctx); err != nil {
				return err
			}
			g.emit0("print")
		}
		// print, the draw opcodes and pushOrigin/popOrigin push nothing, so
		// a 0 stands in as the call's value, as a void method's return does.
		g.emit1("iconst", 0)
		return nil
	}

	if structName, ok := drawOpcodeStructs[name]; ok {
		decl, ok := g.res.Structs[structName]
		if !ok {
			return internalErr(v, "codegen: unknown shape struct %q", structName)
		}
		if len(v.Args) != len(decl.Fields) {
			return internalErr(v, "%s expects %d argument(s), got %d", name, len(decl.Fields), len(v.Args))
		}
		g.emit1("struct", len(decl.Fields))
		for i, arg := range v.Args {
			if err := g.emitExpr(arg, ctx); err != nil {
				return err
			}
			g.emit1("fstore", i)
		}
		g.emit0(name)
		g.emit1("iconst", 0)
		return nil
	}

	// pushOrigin / popOrigin: plain int operands via the stack, no struct.
	for _, arg := range v.Args {
		if err := g.emitExpr(arg, ctx); err != nil {
			return err
		}
	}
	g.emit0(name)
	g.emit1("iconst", 0)
	return nil
}
