package semantic

import (
	"fmt"

	"github.com/jialihong/rectangle/internal/ast"
	cerrors "github.com/jialihong/rectangle/internal/errors"
	"github.com/jialihong/rectangle/internal/types"
)

// indexInstances walks the instance tree pre-order, assigning each instance
// a sequential index, resolving its component, determining its id (explicit
// `id:` binding or synthetic "#<index>"), and defining it as a symbol in
// the virtual main scope so any binding expression anywhere in the tree can
// reach it by name (spec.md §4.5 phase 2).
func (a *analyzer) indexInstances(root *ast.ComponentInstance) error {
	counter := 0

	var visit func(inst *ast.ComponentInstance) error
	visit = func(inst *ast.ComponentInstance) error {
		comp, ok := a.components[inst.ComponentName]
		if !ok {
			return cerrors.Semanticf(inst.Tok().Pos, "No component named %q", inst.ComponentName)
		}
		inst.Component = comp
		inst.InstanceIndex = counter
		counter++

		id := ""
		for _, b := range inst.Bindings {
			if b.Name != "id" {
				continue
			}
			ref, ok := b.Value.(*ast.RefExpr)
			if !ok {
				return cerrors.Semanticf(b.Tok().Pos, "the id binding must be a bare identifier")
			}
			id = ref.Name
		}
		if id == "" {
			id = fmt.Sprintf("#%d", inst.InstanceIndex)
		}
		if _, dup := a.instanceIDs[id]; dup {
			return cerrors.Semanticf(inst.Tok().Pos, "instance id %q redefined", id)
		}
		inst.InstanceID = id
		a.instanceIDs[id] = inst
		a.instances = append(a.instances, inst)

		sym := &Symbol{Kind: KindInstance, Name: id, Type: types.NewCustom(comp.Name), Instance: inst, Index: inst.InstanceIndex}
		if !a.mainScope.Define(sym) {
			return cerrors.Semanticf(inst.Tok().Pos, "instance id %q redefined", id)
		}

		size := 1
		for _, child := range inst.Children {
			child.Parent = inst
			if err := visit(child); err != nil {
				return err
			}
			size += child.TreeSize
		}
		inst.TreeSize = size
		return nil
	}

	return visit(root)
}

// resolveBindings type-checks every binding's value expression in a scope
// rooted at the instance (falling back to its component's scope for
// self-property/method/enum names), records each binding's resolved
// property index, and accumulates binding->binding dependency edges for
// both self-property reads and `<otherId>.<prop>` reads.
func (a *analyzer) resolveBindings(inst *ast.ComponentInstance, parent *ast.ComponentInstance) error {
	compScope := a.compScopes[inst.Component.Name]
	instScope := NewEnclosedSymbolTable(a.mainScope).WithComponentScope(compScope)
	if parent != nil {
		instScope.Define(&Symbol{
			Kind: KindInstance, Name: "parent",
			Type: types.NewCustom(parent.Component.Name), Instance: parent,
		})
	}

	seen := make(map[int]bool)
	for _, b := range inst.Bindings {
		if b.Name == "id" {
			continue
		}
		prop, idx, found := findIndexedProperty(inst.Component, b.Name)
		if !found {
			return cerrors.Semanticf(b.Tok().Pos, "No symbol named %q on component %q", b.Name, inst.Component.Name)
		}
		if seen[idx] {
			return cerrors.Semanticf(b.Tok().Pos, "property %q bound more than once on this instance", b.Name)
		}
		seen[idx] = true
		b.PropertyIndex = idx

		ck := newChecker(instScope, a, checkerCtx{bindingScope: true, selfInstanceID: inst.InstanceID})
		ty, err := ck.checkExpr(b.Value)
		if err != nil {
			return err
		}
		if !types.AssignCompatible(prop.Type, ty) {
			return cerrors.Semanticf(b.Value.Tok().Pos, "cannot bind property %q of type %s with %s", b.Name, prop.Type, ty)
		}

		dst := bindingID(inst.InstanceID, idx)
		for _, srcIdx := range ck.propertyReads {
			if srcIdx == idx {
				continue
			}
			a.bindingDeps = append(a.bindingDeps, [2]string{dst, bindingID(inst.InstanceID, srcIdx)})
		}
		for _, cr := range ck.crossRefs {
			a.bindingDeps = append(a.bindingDeps, [2]string{dst, bindingID(cr.instanceID, cr.propIndex)})
		}
	}

	for _, child := range inst.Children {
		if err := a.resolveBindings(child, inst); err != nil {
			return err
		}
	}
	return nil
}
