package asm

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Disassemble renders a Program back to assembly text, one line per
// instruction with a leading `<addr>:` byte offset, matching the teacher's
// disassembler layout (a header per function, offsets for every
// instruction, symbolic operands where one is available).
func Disassemble(p *Program) string {
	var sb strings.Builder

	funcAt := make(map[int]Function, len(p.Functions))
	for _, f := range p.Functions {
		funcAt[f.Addr] = f
	}
	labelAt := collectBranchTargets(p)

	addr := 0
	for addr < len(p.Code) {
		if f, ok := funcAt[addr]; ok {
			fmt.Fprintf(&sb, ".def %s %d %d\n", f.Name, f.Args, f.Locals)
		}
		if name, ok := labelAt[addr]; ok {
			fmt.Fprintf(&sb, "%s:\n", name)
		}

		op := OpCode(p.Code[addr])
		info := opcodeInfo[op]
		if !info.hasOperand {
			fmt.Fprintf(&sb, "%6d:\t%s\n", addr, info.name)
			addr++
			continue
		}

		operand := int32(binary.LittleEndian.Uint32(p.Code[addr+1 : addr+5]))
		fmt.Fprintf(&sb, "%6d:\t%s %s\n", addr, info.name, operandText(p, op, operand, labelAt))
		addr += 5
	}
	return sb.String()
}

func operandText(p *Program, op OpCode, operand int32, labels map[int]string) string {
	switch op {
	case OpBr, OpBrt, OpBrf:
		if name, ok := labels[int(operand)]; ok {
			return name
		}
		return strconv.Itoa(int(operand))
	case OpCall:
		if int(operand) >= 0 && int(operand) < len(p.Functions) {
			return p.Functions[operand].Name
		}
		return strconv.Itoa(int(operand))
	case OpFConst:
		if int(operand) >= 0 && int(operand) < len(p.Constants) {
			return strconv.FormatFloat(p.Constants[operand].Float, 'g', -1, 64)
		}
		return strconv.Itoa(int(operand))
	case OpSConst:
		if int(operand) >= 0 && int(operand) < len(p.Constants) {
			return strconv.Quote(p.Constants[operand].String)
		}
		return strconv.Itoa(int(operand))
	default:
		return strconv.Itoa(int(operand))
	}
}

// collectBranchTargets assigns a synthetic `.L<n>` name to every distinct
// address targeted by a br/brt/brf instruction, numbered in address order,
// purely for readability: the VM itself never looks names up, only the
// Program's raw addresses.
func collectBranchTargets(p *Program) map[int]string {
	seen := make(map[int]bool)
	addr := 0
	for addr < len(p.Code) {
		op := OpCode(p.Code[addr])
		info := opcodeInfo[op]
		if !info.hasOperand {
			addr++
			continue
		}
		if op == OpBr || op == OpBrt || op == OpBrf {
			target := int(int32(binary.LittleEndian.Uint32(p.Code[addr+1 : addr+5])))
			seen[target] = true
		}
		addr += 5
	}

	addrs := make([]int, 0, len(seen))
	for a := range seen {
		addrs = append(addrs, a)
	}
	sort.Ints(addrs)

	labels := make(map[int]string, len(addrs))
	for i, a := range addrs {
		labels[a] = fmt.Sprintf(".L%d", i+1)
	}
	return labels
}
