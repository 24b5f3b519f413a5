// Package asm assembles the textual instructions produced by
// internal/codegen into the bytecode executed by internal/vm (spec.md
// §4.7), and can disassemble that bytecode back to text for --dump-bytecode.
package asm

// OpCode identifies one VM instruction. Every opcode occupies exactly one
// byte in the code stream; opcodes whose opcodeInfo entry has hasOperand set
// additionally carry a 32-bit little-endian signed operand.
type OpCode byte

const (
	OpIAdd OpCode = iota
	OpISub
	OpIMul
	OpIDiv
	OpIRem
	OpIEq
	OpINe
	OpILt
	OpIGt
	OpILe
	OpIGe
	OpINeg
	OpIAnd
	OpIOr
	OpINot
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFEq
	OpFNe
	OpFLt
	OpFGt
	OpFLe
	OpFGe
	OpFNeg
	OpSAdd
	OpSEq
	OpSNe
	OpPop
	OpVector
	OpVAppend
	OpVLoad
	OpVStore
	OpRet
	OpLen
	OpPrint
	OpHalt
	OpDefineScene
	OpPushOrigin
	OpPopOrigin
	OpDrawRect
	OpDrawText
	OpDrawEllipse
	OpDrawPolygon
	OpDrawLine
	OpDrawPolyline
	OpGLoad
	OpGStore
	OpLLoad
	OpLStore
	OpFLoad
	OpFStore
	OpIConst
	OpFConst
	OpSConst
	OpStruct
	OpBr
	OpBrt
	OpBrf
	OpCall
)

// mnemonics maps the textual instruction name (as codegen emits it) to its
// opcode. Built once from opcodeInfo so the two stay in sync.
var mnemonics = func() map[string]OpCode {
	m := make(map[string]OpCode, len(opcodeInfo))
	for op, info := range opcodeInfo {
		m[info.name] = op
	}
	return m
}()

type opInfo struct {
	name       string
	hasOperand bool
}

var opcodeInfo = map[OpCode]opInfo{
	OpIAdd:         {"iadd", false},
	OpISub:         {"isub", false},
	OpIMul:         {"imul", false},
	OpIDiv:         {"idiv", false},
	OpIRem:         {"irem", false},
	OpIEq:          {"ieq", false},
	OpINe:          {"ine", false},
	OpILt:          {"ilt", false},
	OpIGt:          {"igt", false},
	OpILe:          {"ile", false},
	OpIGe:          {"ige", false},
	OpINeg:         {"ineg", false},
	OpIAnd:         {"iand", false},
	OpIOr:          {"ior", false},
	OpINot:         {"inot", false},
	OpFAdd:         {"fadd", false},
	OpFSub:         {"fsub", false},
	OpFMul:         {"fmul", false},
	OpFDiv:         {"fdiv", false},
	OpFEq:          {"feq", false},
	OpFNe:          {"fne", false},
	OpFLt:          {"flt", false},
	OpFGt:          {"fgt", false},
	OpFLe:          {"fle", false},
	OpFGe:          {"fge", false},
	OpFNeg:         {"fneg", false},
	OpSAdd:         {"sadd", false},
	OpSEq:          {"seq", false},
	OpSNe:          {"sne", false},
	OpPop:          {"pop", false},
	OpVector:       {"vector", false},
	OpVAppend:      {"vappend", false},
	OpVLoad:        {"vload", false},
	OpVStore:       {"vstore", false},
	OpRet:          {"ret", false},
	OpLen:          {"len", false},
	OpPrint:        {"print", false},
	OpHalt:         {"halt", false},
	OpDefineScene:  {"defineScene", false},
	OpPushOrigin:   {"pushOrigin", false},
	OpPopOrigin:    {"popOrigin", false},
	OpDrawRect:     {"drawRect", false},
	OpDrawText:     {"drawText", false},
	OpDrawEllipse:  {"drawEllipse", false},
	OpDrawPolygon:  {"drawPolygon", false},
	OpDrawLine:     {"drawLine", false},
	OpDrawPolyline: {"drawPolyline", false},
	OpGLoad:        {"gload", true},
	OpGStore:       {"gstore", true},
	OpLLoad:        {"lload", true},
	OpLStore:       {"lstore", true},
	OpFLoad:        {"fload", true},
	OpFStore:       {"fstore", true},
	OpIConst:       {"iconst", true},
	OpFConst:       {"fconst", true},
	OpSConst:       {"sconst", true},
	OpStruct:       {"struct", true},
	OpBr:           {"br", true},
	OpBrt:          {"brt", true},
	OpBrf:          {"brf", true},
	OpCall:         {"call", true},
}

func (op OpCode) String() string {
	if info, ok := opcodeInfo[op]; ok {
		return info.name
	}
	return "???"
}

// ConstKind tags the type of value interned in a Program's constant pool.
type ConstKind int

const (
	ConstFloat ConstKind = iota
	ConstString
)

// Constant is one deduplicated entry of the constant pool. Float and string
// constants are both interned by value (spec.md §4.7): two sconst/fconst
// directives with the same value share one pool slot.
type Constant struct {
	Kind   ConstKind
	Float  float64
	String string
}

// Function describes one `.def` entry: its name, entry address in Code,
// and its calling-convention shape.
type Function struct {
	Name   string
	Addr   int
	Args   int
	Locals int
}

// Program is the assembled output: a flat byte-code stream, its interned
// constant pool, and a function table resolving `call` operands to entry
// addresses.
type Program struct {
	Code      []byte
	Constants []Constant
	Functions []Function
}

// FuncIndex returns the index of the function named name, or -1.
func (p *Program) FuncIndex(name string) int {
	for i, f := range p.Functions {
		if f.Name == name {
			return i
		}
	}
	return -1
}
