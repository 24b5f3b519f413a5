package semantic

import (
	"github.com/jialihong/rectangle/internal/ast"
	cerrors "github.com/jialihong/rectangle/internal/errors"
	"github.com/jialihong/rectangle/internal/sortutil"
)

// cell is one property-initialization slot: an instance's property, and
// the expression that fills it — either an explicit binding or the owning
// component's default.
type cell struct {
	inst *ast.ComponentInstance
	idx  int
	expr ast.Expr
}

// buildMemberInitOrder gathers every binding-id in the tree (bound and
// unbound alike), combines the component-level property edges (lifted to
// every instance of that component) with the binding->binding edges found
// in phase 2, and returns the topological order the generated `main`
// function must assign properties in (spec.md §4.5 phase 3).
func (a *analyzer) buildMemberInitOrder() ([]MemberInit, error) {
	var cells []cell
	nodeIndex := make(map[string]int)

	bound := make(map[*ast.ComponentInstance]map[int]*ast.Binding)
	for _, inst := range a.instances {
		m := make(map[int]*ast.Binding)
		for _, b := range inst.Bindings {
			if b.Name == "id" {
				continue
			}
			m[b.PropertyIndex] = b
		}
		bound[inst] = m
	}

	for _, inst := range a.instances {
		for idx, p := range inst.Component.Properties {
			var expr ast.Expr
			if b, ok := bound[inst][idx]; ok {
				expr = b.Value
			} else {
				expr = p.Init
			}
			nodeIndex[bindingID(inst.InstanceID, idx)] = len(cells)
			cells = append(cells, cell{inst: inst, idx: idx, expr: expr})
		}
	}

	if len(cells) == 0 {
		return nil, nil
	}

	sorter := sortutil.NewSorter(len(cells))
	detector := sortutil.NewLoopDetector()

	addEdge := func(dstID, srcID string) {
		dst, dok := nodeIndex[dstID]
		src, sok := nodeIndex[srcID]
		if !dok || !sok || dst == src {
			return
		}
		sorter.AddEdge(dst, src)
		detector.AddEdge(dst, src)
	}

	for _, inst := range a.instances {
		for _, e := range inst.Component.PropEdges {
			addEdge(bindingID(inst.InstanceID, e.Dst), bindingID(inst.InstanceID, e.Src))
		}
	}
	for _, d := range a.bindingDeps {
		addEdge(d[0], d[1])
	}

	order, result := sorter.Sort()
	if result == sortutil.LoopDetected {
		node, _ := detector.Detect()
		c := cells[node]
		prop := c.inst.Component.Properties[c.idx]
		return nil, cerrors.Semanticf(prop.Tok().Pos, "Loop detected in property dependency: %s.%s", c.inst.InstanceID, prop.Name)
	}

	out := make([]MemberInit, 0, len(cells))
	for _, n := range order {
		c := cells[n]
		out = append(out, MemberInit{Instance: c.inst, PropertyIndex: c.idx, Expr: c.expr})
	}
	return out, nil
}
