// Package codegen lowers an analyzed AST (the output of internal/semantic)
// into the textual assembly consumed by internal/asm (spec.md §4.6). It
// emits one line per instruction, a `.def <name> <args> <locals>` header per
// function, and `.L<n>` label lines as branch targets.
package codegen

import (
	"fmt"
	"strings"

	"github.com/jialihong/rectangle/internal/ast"
	cerrors "github.com/jialihong/rectangle/internal/errors"
	"github.com/jialihong/rectangle/internal/semantic"
)

// drawOpcodeStructs maps a draw builtin's name to the shape struct whose
// field layout (spec.md §6) describes the positional arguments it accepts.
// pushOrigin/popOrigin are intentionally absent: they take plain int
// operands, not a struct.
var drawOpcodeStructs = map[string]string{
	"defineScene":  "svg_scene",
	"drawRect":     "svg_rect",
	"drawText":     "svg_text",
	"drawEllipse":  "svg_ellipse",
	"drawPolygon":  "svg_polygon",
	"drawLine":     "svg_line",
	"drawPolyline": "svg_polyline",
}

// loopLabels is the innermost loop's continue/break targets, pushed on
// entering a while body and popped on leaving it.
type loopLabels struct {
	cont string
	end  string
}

// gen carries the mutable state threaded through one function body's
// emission: the output buffer, the label counter, and the loop-label stack
// used to resolve break/continue.
type gen struct {
	res    *semantic.Result
	out    *strings.Builder
	labels int
	loops  []loopLabels
}

// exprCtx tells the expression emitter which local slot holds "self" for a
// bare self-property reference: local 0 inside a method body, or the owning
// instance's index when compiling a member-init expression inside main
// (spec.md §4.6 "Rvalue compilation of a bare ref").
type exprCtx struct {
	selfLocal int
}

func newGen(res *semantic.Result) *gen {
	return &gen{res: res, out: &strings.Builder{}}
}

func (g *gen) newLabel() string {
	g.labels++
	return fmt.Sprintf(".L%d", g.labels)
}

func (g *gen) line(s string) {
	g.out.WriteString(s)
	g.out.WriteString("\n")
}

// emit0 writes a zero-operand instruction.
func (g *gen) emit0(mnemonic string) {
	g.line("\t" + mnemonic)
}

// emit1 writes a one-operand instruction.
func (g *gen) emit1(mnemonic string, operand int) {
	g.line(fmt.Sprintf("\t%s %d", mnemonic, operand))
}

// emit1s writes a one-operand instruction whose operand is a label or
// function name rather than an integer.
func (g *gen) emit1s(mnemonic, operand string) {
	g.line(fmt.Sprintf("\t%s %s", mnemonic, operand))
}

func (g *gen) label(name string) {
	g.line(name + ":")
}

// Emit runs the full AST -> assembly lowering over an analyzed compile
// unit and returns the generated assembly text.
func Emit(res *semantic.Result) (string, error) {
	g := newGen(res)

	for _, name := range componentNamesInOrder(res.Components) {
		c := res.Components[name]
		for _, m := range c.Methods {
			if err := g.emitMethod(c, m); err != nil {
				return "", err
			}
		}
	}

	if err := g.emitMain(); err != nil {
		return "", err
	}

	return g.out.String(), nil
}

// componentNamesInOrder gives a deterministic iteration order over a name
// keyed map, since map iteration order is not stable and the emitted
// assembly should be reproducible across runs.
func componentNamesInOrder(components map[string]*ast.ComponentDef) []string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

func mangledMethodName(comp *ast.ComponentDef, m *ast.FuncDecl) string {
	return comp.Name + "." + m.Name
}

func findProperty(c *ast.ComponentDef, name string) (*ast.PropertyDecl, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func findMethodIn(c *ast.ComponentDef, name string) (*ast.FuncDecl, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

func internalErr(n ast.Node, format string, args ...any) error {
	return cerrors.Internalf(n.Tok().Pos, format, args...)
}
