package semantic

import (
	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/types"
)

// builtinStruct names one compiler-synthesized shape struct (spec.md §6
// "Shape fields"); field order is the wire contract the code emitter and
// draw backend both rely on.
type builtinStruct struct {
	name   string
	fields []*ast.FieldDecl
}

func field(name string, ty types.Type, idx int) *ast.FieldDecl {
	return ast.NewField(ast.Token0(), name, ty, idx)
}

var pointListType = types.NewList(types.NewList(types.IntType))

func builtinStructs() []builtinStruct {
	return []builtinStruct{
		{
			name: "svg_scene",
			fields: []*ast.FieldDecl{
				field("leftMargin", types.IntType, 0),
				field("topMargin", types.IntType, 1),
				field("rightMargin", types.IntType, 2),
				field("bottomMargin", types.IntType, 3),
				field("width", types.IntType, 4),
				field("height", types.IntType, 5),
			},
		},
		{
			name: "svg_rect",
			fields: []*ast.FieldDecl{
				field("x", types.IntType, 0),
				field("y", types.IntType, 1),
				field("width", types.IntType, 2),
				field("height", types.IntType, 3),
				field("fill_color", types.StringType, 4),
				field("stroke_color", types.StringType, 5),
				field("stroke_dasharray", types.StringType, 6),
				field("stroke_width", types.IntType, 7),
			},
		},
		{
			name: "svg_text",
			fields: []*ast.FieldDecl{
				field("x", types.IntType, 0),
				field("y", types.IntType, 1),
				field("size", types.IntType, 2),
				field("text", types.StringType, 3),
			},
		},
		{
			name: "svg_ellipse",
			fields: []*ast.FieldDecl{
				field("x", types.IntType, 0),
				field("y", types.IntType, 1),
				field("x_radius", types.IntType, 2),
				field("y_radius", types.IntType, 3),
				field("fill_color", types.StringType, 4),
				field("stroke_color", types.StringType, 5),
				field("stroke_dasharray", types.StringType, 6),
				field("stroke_width", types.IntType, 7),
			},
		},
		{
			name: "svg_polygon",
			fields: []*ast.FieldDecl{
				field("x", types.IntType, 0),
				field("y", types.IntType, 1),
				field("points", pointListType, 2),
				field("fill_color", types.StringType, 3),
				field("fill_rule", types.StringType, 4),
				field("stroke_color", types.StringType, 5),
				field("stroke_dasharray", types.StringType, 6),
				field("stroke_width", types.IntType, 7),
			},
		},
		{
			name: "svg_line",
			fields: []*ast.FieldDecl{
				field("x", types.IntType, 0),
				field("y", types.IntType, 1),
				field("dx1", types.IntType, 2),
				field("dy1", types.IntType, 3),
				field("dx2", types.IntType, 4),
				field("dy2", types.IntType, 5),
				field("stroke_color", types.StringType, 6),
				field("stroke_dasharray", types.StringType, 7),
				field("stroke_width", types.IntType, 8),
			},
		},
		{
			name: "svg_polyline",
			fields: []*ast.FieldDecl{
				field("x", types.IntType, 0),
				field("y", types.IntType, 1),
				field("points", pointListType, 2),
				field("stroke_color", types.StringType, 3),
				field("stroke_dasharray", types.StringType, 4),
				field("stroke_width", types.IntType, 5),
			},
		},
	}
}

// builtinFuncNames lists the draw and origin functions registered here as
// built-in symbols; each name is also the mnemonic of the opcode the code
// emitter issues for it instead of a generic call.
var builtinFuncNames = []string{
	"defineScene", "drawRect", "drawEllipse", "drawText",
	"drawPolygon", "drawLine", "drawPolyline",
	"pushOrigin", "popOrigin",
}

// newGlobalScope builds the scope every compile unit starts from: the
// built-in shape structs and the built-in functions (draw family, len,
// print), all with Void-wildcard parameters so a caller can pass an
// init-list literal directly (spec.md §4.5 "Calls accept built-in
// functions ... with wildcard parameter types").
func newGlobalScope() (*SymbolTable, map[string]*ast.StructDecl) {
	global := NewSymbolTable()
	structsByName := make(map[string]*ast.StructDecl)

	for _, bs := range builtinStructs() {
		decl := ast.NewStruct(ast.Token0(), bs.name, bs.fields)
		structsByName[bs.name] = decl
		global.Define(&Symbol{Kind: KindStruct, Name: bs.name, Type: types.NewCustom(bs.name), Struct: decl})
	}

	for _, name := range builtinFuncNames {
		global.Define(&Symbol{Kind: KindBuiltinFunc, Name: name, Type: types.VoidType})
	}
	global.Define(&Symbol{Kind: KindBuiltinFunc, Name: "len", Type: types.IntType})
	global.Define(&Symbol{Kind: KindBuiltinFunc, Name: "print", Type: types.VoidType})

	return global, structsByName
}

// IsBuiltinFunc reports whether name is one of the draw/len/print built-ins.
func IsBuiltinFunc(name string) bool {
	switch name {
	case "len", "print":
		return true
	}
	for _, n := range builtinFuncNames {
		if n == name {
			return true
		}
	}
	return false
}

// IsDrawFunc reports whether name lowers to a dedicated draw opcode.
func IsDrawFunc(name string) bool {
	for _, n := range builtinFuncNames {
		if n == name {
			return true
		}
	}
	return false
}
