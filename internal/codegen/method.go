package codegen

import (
	"strconv"

	"github.com/jialihong/rectangle/internal/ast"
)

// emitMethod writes one `.def` function for a component method. The
// implicit self parameter always occupies local 0; m.LocalCount (filled by
// the semantic pass) already counts self + params + declared locals, so
// the function's "locals" count is whatever remains beyond its argument
// count.
func (g *gen) emitMethod(c *ast.ComponentDef, m *ast.FuncDecl) error {
	args := len(m.Params) + 1
	locals := m.LocalCount - args
	if locals < 0 {
		locals = 0
	}

	g.line(".def " + mangledMethodName(c, m) + " " + strconv.Itoa(args) + " " + strconv.Itoa(locals))
	if err := g.emitBlock(m.Body, exprCtx{selfLocal: 0}); err != nil {
		return err
	}

	// Safety net for a method body that falls off the end without an
	// explicit return on every path; checkReturnTypes only validates
	// returns it actually finds, not exhaustiveness.
	g.emit1("iconst", 0)
	g.emit0("ret")
	return nil
}
