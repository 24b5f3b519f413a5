// Package vm executes the bytecode produced by internal/asm: a stack
// machine with one global instruction pointer and a frame stack of locals
// arrays (spec.md §4.8), grounded on the teacher's internal/bytecode VM
// (push/pop/frame shape, runtime-error wrapping) but restructured around a
// single shared program counter instead of a per-frame one, and around the
// draw-opcode dispatch this language's component tree needs.
package vm

import (
	"fmt"
	"io"

	"github.com/jialihong/rectangle/internal/asm"
	"github.com/jialihong/rectangle/internal/draw"
)

// RuntimeError reports a failure raised while executing bytecode.
type RuntimeError struct {
	Message string
	Addr    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d: %s", e.Addr, e.Message)
}

type frame struct {
	locals     []Value
	returnAddr int
}

// VM runs one Program to completion. Each VM is single-use: construct one
// per Run call.
type VM struct {
	prog    *asm.Program
	out     io.Writer
	scene   *draw.Scene
	stack   []Value
	frames  []frame
	globals []Value
	pc      int
	halted  bool
}

// New returns a VM that writes `print` output to out and accumulates draw
// calls into scene.
func New(out io.Writer, scene *draw.Scene) *VM {
	if out == nil {
		out = io.Discard
	}
	return &VM{out: out, scene: scene}
}

// Run executes prog's `main` function until it halts.
func (m *VM) Run(prog *asm.Program) error {
	idx := prog.FuncIndex("main")
	if idx < 0 {
		return fmt.Errorf("vm: program has no main function")
	}
	m.prog = prog
	main := prog.Functions[idx]
	m.frames = append(m.frames, frame{locals: make([]Value, main.Args+main.Locals), returnAddr: -1})
	m.pc = main.Addr

	for !m.halted {
		if m.pc < 0 || m.pc >= len(prog.Code) {
			return m.errf("instruction pointer %d out of range", m.pc)
		}
		op := asm.OpCode(prog.Code[m.pc])
		m.pc++
		if err := m.step(op); err != nil {
			return err
		}
	}
	return nil
}

func (m *VM) errf(format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Addr: m.pc}
}

func (m *VM) operand() int32 {
	b := m.prog.Code[m.pc : m.pc+4]
	m.pc += 4
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

func (m *VM) push(v Value) { m.stack = append(m.stack, v) }

func (m *VM) pop() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, m.errf("stack underflow")
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *VM) peek() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, m.errf("stack underflow")
	}
	return m.stack[len(m.stack)-1], nil
}

func (m *VM) curFrame() *frame { return &m.frames[len(m.frames)-1] }

func (m *VM) step(op asm.OpCode) error {
	switch op {
	case asm.OpIAdd, asm.OpISub, asm.OpIMul, asm.OpIDiv, asm.OpIRem,
		asm.OpIEq, asm.OpINe, asm.OpILt, asm.OpIGt, asm.OpILe, asm.OpIGe, asm.OpIAnd, asm.OpIOr:
		return m.binaryInt(op)
	case asm.OpINeg:
		a, err := m.pop()
		if err != nil {
			return err
		}
		m.push(IntValue(-a.Int))
		return nil
	case asm.OpINot:
		a, err := m.pop()
		if err != nil {
			return err
		}
		m.push(boolInt(!a.Truthy()))
		return nil

	case asm.OpFAdd, asm.OpFSub, asm.OpFMul, asm.OpFDiv,
		asm.OpFEq, asm.OpFNe, asm.OpFLt, asm.OpFGt, asm.OpFLe, asm.OpFGe:
		return m.binaryFloat(op)
	case asm.OpFNeg:
		a, err := m.pop()
		if err != nil {
			return err
		}
		m.push(FloatValue(-a.Float))
		return nil

	case asm.OpSAdd:
		b, err := m.pop()
		if err != nil {
			return err
		}
		a, err := m.pop()
		if err != nil {
			return err
		}
		m.push(StringValue(a.Str + b.Str))
		return nil
	case asm.OpSEq, asm.OpSNe:
		b, err := m.pop()
		if err != nil {
			return err
		}
		a, err := m.pop()
		if err != nil {
			return err
		}
		eq := a.Str == b.Str
		if op == asm.OpSNe {
			eq = !eq
		}
		m.push(boolInt(eq))
		return nil

	case asm.OpPop:
		_, err := m.pop()
		return err

	case asm.OpVector:
		m.push(ListOf(nil))
		return nil
	case asm.OpVAppend:
		v, err := m.pop()
		if err != nil {
			return err
		}
		lst, err := m.peek()
		if err != nil {
			return err
		}
		if lst.Kind != KindList {
			return m.errf("vappend on a non-list value")
		}
		lst.List.Elems = append(lst.List.Elems, v)
		return nil
	case asm.OpVLoad:
		idx, err := m.pop()
		if err != nil {
			return err
		}
		lst, err := m.pop()
		if err != nil {
			return err
		}
		if lst.Kind != KindList {
			return m.errf("vload on a non-list value")
		}
		if idx.Int < 0 || int(idx.Int) >= len(lst.List.Elems) {
			return m.errf("list index %d out of range", idx.Int)
		}
		m.push(lst.List.Elems[idx.Int])
		return nil
	case asm.OpVStore:
		v, err := m.pop()
		if err != nil {
			return err
		}
		idx, err := m.pop()
		if err != nil {
			return err
		}
		lst, err := m.pop()
		if err != nil {
			return err
		}
		if lst.Kind != KindList {
			return m.errf("vstore on a non-list value")
		}
		if idx.Int < 0 || int(idx.Int) >= len(lst.List.Elems) {
			return m.errf("list index %d out of range", idx.Int)
		}
		lst.List.Elems[idx.Int] = v
		return nil

	case asm.OpLen:
		v, err := m.pop()
		if err != nil {
			return err
		}
		switch v.Kind {
		case KindString:
			m.push(IntValue(int64(len(v.Str))))
		case KindList:
			m.push(IntValue(int64(len(v.List.Elems))))
		default:
			return m.errf("len() on a value with no length")
		}
		return nil

	case asm.OpPrint:
		v, err := m.pop()
		if err != nil {
			return err
		}
		fmt.Fprint(m.out, v.String())
		return nil

	case asm.OpRet:
		return m.ret()

	case asm.OpHalt:
		m.halted = true
		return nil

	case asm.OpDefineScene, asm.OpPushOrigin, asm.OpPopOrigin,
		asm.OpDrawRect, asm.OpDrawText, asm.OpDrawEllipse,
		asm.OpDrawPolygon, asm.OpDrawLine, asm.OpDrawPolyline:
		return m.drawOp(op)

	case asm.OpGLoad:
		idx := int(m.operand())
		if idx < 0 || idx >= len(m.globals) {
			m.push(IntValue(0))
			return nil
		}
		m.push(m.globals[idx])
		return nil
	case asm.OpGStore:
		idx := int(m.operand())
		v, err := m.pop()
		if err != nil {
			return err
		}
		for idx >= len(m.globals) {
			m.globals = append(m.globals, Value{})
		}
		m.globals[idx] = v
		return nil

	case asm.OpLLoad:
		idx := int(m.operand())
		locals := m.curFrame().locals
		if idx < 0 || idx >= len(locals) {
			return m.errf("local index %d out of range", idx)
		}
		m.push(locals[idx])
		return nil
	case asm.OpLStore:
		idx := int(m.operand())
		v, err := m.pop()
		if err != nil {
			return err
		}
		locals := m.curFrame().locals
		if idx < 0 || idx >= len(locals) {
			return m.errf("local index %d out of range", idx)
		}
		locals[idx] = v
		return nil

	case asm.OpFLoad:
		idx := int(m.operand())
		s, err := m.pop()
		if err != nil {
			return err
		}
		if s.Kind != KindStruct {
			return m.errf("fload on a non-struct value")
		}
		if idx < 0 || idx >= len(s.Struct.Fields) {
			return m.errf("field index %d out of range", idx)
		}
		m.push(s.Struct.Fields[idx])
		return nil
	case asm.OpFStore:
		idx := int(m.operand())
		v, err := m.pop()
		if err != nil {
			return err
		}
		s, err := m.peek()
		if err != nil {
			return err
		}
		if s.Kind != KindStruct {
			return m.errf("fstore on a non-struct value")
		}
		if idx < 0 || idx >= len(s.Struct.Fields) {
			return m.errf("field index %d out of range", idx)
		}
		s.Struct.Fields[idx] = v
		return nil

	case asm.OpIConst:
		m.push(IntValue(int64(m.operand())))
		return nil
	case asm.OpFConst:
		idx := int(m.operand())
		if idx < 0 || idx >= len(m.prog.Constants) {
			return m.errf("constant index %d out of range", idx)
		}
		m.push(FloatValue(m.prog.Constants[idx].Float))
		return nil
	case asm.OpSConst:
		idx := int(m.operand())
		if idx < 0 || idx >= len(m.prog.Constants) {
			return m.errf("constant index %d out of range", idx)
		}
		m.push(StringValue(m.prog.Constants[idx].String))
		return nil
	case asm.OpStruct:
		n := int(m.operand())
		m.push(StructOf(n))
		return nil

	case asm.OpBr:
		target := int(m.operand())
		m.pc = target
		return nil
	case asm.OpBrt:
		target := int(m.operand())
		v, err := m.pop()
		if err != nil {
			return err
		}
		if v.Truthy() {
			m.pc = target
		}
		return nil
	case asm.OpBrf:
		target := int(m.operand())
		v, err := m.pop()
		if err != nil {
			return err
		}
		if !v.Truthy() {
			m.pc = target
		}
		return nil

	case asm.OpCall:
		return m.call(int(m.operand()))

	default:
		return m.errf("unimplemented opcode %s", op)
	}
}

func boolInt(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

func (m *VM) binaryInt(op asm.OpCode) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	switch op {
	case asm.OpIAdd:
		m.push(IntValue(a.Int + b.Int))
	case asm.OpISub:
		m.push(IntValue(a.Int - b.Int))
	case asm.OpIMul:
		m.push(IntValue(a.Int * b.Int))
	case asm.OpIDiv:
		if b.Int == 0 {
			return m.errf("integer division by zero")
		}
		m.push(IntValue(a.Int / b.Int))
	case asm.OpIRem:
		if b.Int == 0 {
			return m.errf("integer division by zero")
		}
		m.push(IntValue(a.Int % b.Int))
	case asm.OpIEq:
		m.push(boolInt(a.Int == b.Int))
	case asm.OpINe:
		m.push(boolInt(a.Int != b.Int))
	case asm.OpILt:
		m.push(boolInt(a.Int < b.Int))
	case asm.OpIGt:
		m.push(boolInt(a.Int > b.Int))
	case asm.OpILe:
		m.push(boolInt(a.Int <= b.Int))
	case asm.OpIGe:
		m.push(boolInt(a.Int >= b.Int))
	case asm.OpIAnd:
		m.push(boolInt(a.Truthy() && b.Truthy()))
	case asm.OpIOr:
		m.push(boolInt(a.Truthy() || b.Truthy()))
	}
	return nil
}

func (m *VM) binaryFloat(op asm.OpCode) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	switch op {
	case asm.OpFAdd:
		m.push(FloatValue(a.Float + b.Float))
	case asm.OpFSub:
		m.push(FloatValue(a.Float - b.Float))
	case asm.OpFMul:
		m.push(FloatValue(a.Float * b.Float))
	case asm.OpFDiv:
		if b.Float == 0 {
			return m.errf("float division by zero")
		}
		m.push(FloatValue(a.Float / b.Float))
	case asm.OpFEq:
		m.push(boolInt(a.Float == b.Float))
	case asm.OpFNe:
		m.push(boolInt(a.Float != b.Float))
	case asm.OpFLt:
		m.push(boolInt(a.Float < b.Float))
	case asm.OpFGt:
		m.push(boolInt(a.Float > b.Float))
	case asm.OpFLe:
		m.push(boolInt(a.Float <= b.Float))
	case asm.OpFGe:
		m.push(boolInt(a.Float >= b.Float))
	}
	return nil
}

// call pops `args` operands into a fresh frame's locals (reversing them
// back into left-to-right order, since the stack delivers the
// last-pushed argument first) and jumps to the callee's entry address.
func (m *VM) call(funcIdx int) error {
	if funcIdx < 0 || funcIdx >= len(m.prog.Functions) {
		return m.errf("call to undefined function index %d", funcIdx)
	}
	fn := m.prog.Functions[funcIdx]
	args := make([]Value, fn.Args)
	for i := fn.Args - 1; i >= 0; i-- {
		v, err := m.pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	locals := make([]Value, fn.Args+fn.Locals)
	copy(locals, args)
	m.frames = append(m.frames, frame{locals: locals, returnAddr: m.pc})
	m.pc = fn.Addr
	return nil
}

func (m *VM) ret() error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	f := m.frames[len(m.frames)-1]
	m.frames = m.frames[:len(m.frames)-1]
	if len(m.frames) == 0 {
		m.halted = true
		return nil
	}
	m.pc = f.returnAddr
	m.push(v)
	return nil
}
