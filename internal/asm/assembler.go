package asm

import (
	"encoding/binary"
	"strconv"
	"strings"

	cerrors "github.com/jialihong/rectangle/internal/errors"
	"github.com/jialihong/rectangle/internal/token"
)

// instr is one parsed line of assembly, still carrying its operand as raw
// text; addr is filled during the sizing pass below.
type instr struct {
	op      OpCode
	operand string
	fn      string // enclosing function name, for label-scoped branch targets
	addr    int
	line    int
}

type funcDef struct {
	name   string
	args   int
	locals int
	start  int // index into instrs of the first instruction in this function
}

func errAt(line int, format string, args ...any) error {
	return cerrors.Internalf(token.Position{Line: line}, format, args...)
}

// Assemble turns the assembly text produced by internal/codegen into a
// Program. It runs two passes over the parsed instruction list: the first
// (parse) assigns byte addresses to every instruction and label (so
// forward references resolve cleanly), the second (here) encodes each
// instruction, resolving br/brt/brf targets to addresses and call targets
// to function indices.
func Assemble(source string) (*Program, error) {
	instrs, funcs, labels, err := parse(source)
	if err != nil {
		return nil, err
	}

	prog := &Program{}
	for _, f := range funcs {
		prog.Functions = append(prog.Functions, Function{
			Name: f.name, Addr: instrs[f.start].addr, Args: f.args, Locals: f.locals,
		})
	}

	var code []byte
	for i := range instrs {
		in := &instrs[i]
		code = append(code, byte(in.op))
		info := opcodeInfo[in.op]
		if !info.hasOperand {
			continue
		}
		operand, err := resolveOperand(prog, in, labels)
		if err != nil {
			return nil, err
		}
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(operand))
		code = append(code, buf[:]...)
	}
	prog.Code = code
	return prog, nil
}

func resolveOperand(prog *Program, in *instr, labels map[string]int) (int32, error) {
	switch in.op {
	case OpBr, OpBrt, OpBrf:
		addr, ok := labels[in.fn+"#"+in.operand]
		if !ok {
			return 0, errAt(in.line, "asm: undefined label %q", in.operand)
		}
		return int32(addr), nil

	case OpCall:
		idx := prog.FuncIndex(in.operand)
		if idx < 0 {
			return 0, errAt(in.line, "asm: call to undefined function %q", in.operand)
		}
		return int32(idx), nil

	case OpFConst:
		f, err := strconv.ParseFloat(in.operand, 64)
		if err != nil {
			return 0, errAt(in.line, "asm: invalid float constant %q", in.operand)
		}
		return int32(internFloat(prog, f)), nil

	case OpSConst:
		s, err := strconv.Unquote(in.operand)
		if err != nil {
			return 0, errAt(in.line, "asm: invalid string constant %q", in.operand)
		}
		return int32(internString(prog, s)), nil

	default: // gload gstore lload lstore fload fstore iconst struct: raw int
		n, err := strconv.Atoi(in.operand)
		if err != nil {
			return 0, errAt(in.line, "asm: invalid integer operand %q for %s", in.operand, in.op)
		}
		return int32(n), nil
	}
}

func internFloat(prog *Program, f float64) int {
	for i, c := range prog.Constants {
		if c.Kind == ConstFloat && c.Float == f {
			return i
		}
	}
	prog.Constants = append(prog.Constants, Constant{Kind: ConstFloat, Float: f})
	return len(prog.Constants) - 1
}

func internString(prog *Program, s string) int {
	for i, c := range prog.Constants {
		if c.Kind == ConstString && c.String == s {
			return i
		}
	}
	prog.Constants = append(prog.Constants, Constant{Kind: ConstString, String: s})
	return len(prog.Constants) - 1
}

// parse scans the assembly text into a flat instruction list plus function
// and label tables, assigning byte addresses as it goes so later lines can
// be resolved against earlier AND later ones (forward branches, forward
// calls) once encoding starts.
func parse(source string) ([]instr, []funcDef, map[string]int, error) {
	var instrs []instr
	var funcs []funcDef
	labels := make(map[string]int)

	var curName string
	haveFunc := false
	addr := 0

	for lineNo, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".def ") {
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, nil, nil, errAt(lineNo+1, "asm: malformed .def line %q", line)
			}
			args, err1 := strconv.Atoi(fields[2])
			locals, err2 := strconv.Atoi(fields[3])
			if err1 != nil || err2 != nil {
				return nil, nil, nil, errAt(lineNo+1, "asm: malformed .def line %q", line)
			}
			curName = fields[1]
			haveFunc = true
			funcs = append(funcs, funcDef{name: curName, args: args, locals: locals, start: len(instrs)})
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			if !haveFunc {
				return nil, nil, nil, errAt(lineNo+1, "asm: label %q outside any function", line)
			}
			labels[curName+"#"+strings.TrimSuffix(line, ":")] = addr
			continue
		}

		if !haveFunc {
			return nil, nil, nil, errAt(lineNo+1, "asm: instruction %q outside any function", line)
		}

		mnemonic, operand := splitInstruction(line)
		op, ok := mnemonics[mnemonic]
		if !ok {
			return nil, nil, nil, errAt(lineNo+1, "asm: unknown mnemonic %q", mnemonic)
		}
		instrs = append(instrs, instr{op: op, operand: operand, fn: curName, addr: addr, line: lineNo + 1})
		addr++
		if opcodeInfo[op].hasOperand {
			addr += 4
		}
	}

	return instrs, funcs, labels, nil
}

func splitInstruction(line string) (mnemonic, operand string) {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}
