package vm

import (
	"github.com/jialihong/rectangle/internal/asm"
	"github.com/jialihong/rectangle/internal/draw"
)

// drawOp executes one of the dedicated shape/origin opcodes. Every
// draw* and defineScene opcode consumes the struct codegen built for it
// (struct N; fstore 0; fstore 1; ...); pushOrigin/popOrigin take plain int
// arguments pushed straight onto the stack, with no backing struct.
func (m *VM) drawOp(op asm.OpCode) error {
	if op == asm.OpPopOrigin {
		m.scene.PopOrigin()
		return nil
	}
	if op == asm.OpPushOrigin {
		dy, err := m.pop()
		if err != nil {
			return err
		}
		dx, err := m.pop()
		if err != nil {
			return err
		}
		m.scene.PushOrigin(int(dx.Int), int(dy.Int))
		return nil
	}

	s, err := m.pop()
	if err != nil {
		return err
	}
	if s.Kind != KindStruct {
		return m.errf("%s expects a shape struct argument", op)
	}
	f := s.Struct.Fields

	switch op {
	case asm.OpDefineScene:
		m.scene.Define(int(f[0].Int), int(f[1].Int), int(f[2].Int), int(f[3].Int), int(f[4].Int), int(f[5].Int))
	case asm.OpDrawRect:
		m.scene.DrawRect(int(f[0].Int), int(f[1].Int), int(f[2].Int), int(f[3].Int), f[4].Str, f[5].Str, f[6].Str, int(f[7].Int))
	case asm.OpDrawText:
		m.scene.DrawText(int(f[0].Int), int(f[1].Int), int(f[2].Int), f[3].Str)
	case asm.OpDrawEllipse:
		m.scene.DrawEllipse(int(f[0].Int), int(f[1].Int), int(f[2].Int), int(f[3].Int), f[4].Str, f[5].Str, f[6].Str, int(f[7].Int))
	case asm.OpDrawPolygon:
		m.scene.DrawPolygon(int(f[0].Int), int(f[1].Int), toPoints(f[2]), f[3].Str, f[4].Str, f[5].Str, f[6].Str, int(f[7].Int))
	case asm.OpDrawLine:
		m.scene.DrawLine(int(f[0].Int), int(f[1].Int), int(f[2].Int), int(f[3].Int), int(f[4].Int), int(f[5].Int), f[6].Str, f[7].Str, int(f[8].Int))
	case asm.OpDrawPolyline:
		m.scene.DrawPolyline(int(f[0].Int), int(f[1].Int), toPoints(f[2]), f[3].Str, f[4].Str, int(f[5].Int))
	default:
		return m.errf("unhandled draw opcode %s", op)
	}
	return nil
}

// toPoints converts a `list<list<int>>` Value (each inner list is a
// [x, y] pair, per spec.md §6's points field) into draw.Point values.
func toPoints(v Value) []draw.Point {
	if v.Kind != KindList {
		return nil
	}
	pts := make([]draw.Point, 0, len(v.List.Elems))
	for _, el := range v.List.Elems {
		if el.Kind != KindList || len(el.List.Elems) < 2 {
			continue
		}
		pts = append(pts, draw.Point{X: int(el.List.Elems[0].Int), Y: int(el.List.Elems[1].Int)})
	}
	return pts
}
