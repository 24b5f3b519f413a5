package codegen

import (
	"strconv"

	cerrors "github.com/jialihong/rectangle/internal/errors"
)

// emitMain synthesizes the entry function: allocate every instance's
// backing struct, run the ordered member-init list to populate every
// property cell, then walk the instance tree invoking each instance's
// `draw` method in pre-order (spec.md §4.6 "The main function is
// synthesized").
func (g *gen) emitMain() error {
	n := len(g.res.Instances)
	g.line(".def main 0 " + strconv.Itoa(n))

	for _, inst := range g.res.Instances {
		g.emit1("struct", len(inst.Component.Properties))
		g.emit1("lstore", inst.InstanceIndex)
	}

	for _, mi := range g.res.MemberInit {
		g.emit1("lload", mi.Instance.InstanceIndex)
		if err := g.emitExpr(mi.Expr, exprCtx{selfLocal: mi.Instance.InstanceIndex}); err != nil {
			return err
		}
		g.emit1("fstore", mi.PropertyIndex)
		g.emit0("pop")
	}

	for _, inst := range g.res.Instances {
		m, found := findMethodIn(inst.Component, "draw")
		if !found {
			continue
		}
		if len(m.Params) != 0 {
			return cerrors.Semanticf(m.Tok().Pos, "%q.draw must take no parameters", inst.Component.Name)
		}
		g.emit1("lload", inst.InstanceIndex)
		g.emit1s("call", mangledMethodName(inst.Component, m))
		g.emit0("pop")
	}

	g.emit0("halt")
	return nil
}
