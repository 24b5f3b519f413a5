package semantic

import (
	"fmt"

	"github.com/jialihong/rectangle/internal/ast"
	cerrors "github.com/jialihong/rectangle/internal/errors"
)

// MemberInit is one entry of the ordered member-init list (spec.md §4.5
// phase 3): the instance and property index to initialize, and the
// expression to evaluate — either an explicit binding or the owning
// component's default initializer.
type MemberInit struct {
	Instance      *ast.ComponentInstance
	PropertyIndex int
	Expr          ast.Expr
}

// Result is everything the code emitter needs after a clean analysis.
type Result struct {
	Global     *SymbolTable
	Structs    map[string]*ast.StructDecl // built-in shape structs, keyed by name
	Components map[string]*ast.ComponentDef
	Scene      *ast.ComponentInstance // nil when the unit has no instance document
	Instances  []*ast.ComponentInstance
	MemberInit []MemberInit
}

// Analyze runs the full three-phase pass over unit and returns the
// annotated result, or the first semantic/structural error encountered.
func Analyze(unit *ast.CompileUnit) (*Result, error) {
	if unit.SceneCount() > 1 {
		return nil, cerrors.Semanticf(ast.Token0().Pos, "a compile unit may contain at most one component instance document")
	}

	global, structs := newGlobalScope()
	components := make(map[string]*ast.ComponentDef)
	compScopes := make(map[string]*SymbolTable)

	for _, c := range unit.Components() {
		if _, dup := components[c.Name]; dup {
			return nil, cerrors.Semanticf(c.Tok().Pos, "component %q redefined", c.Name)
		}
		components[c.Name] = c
	}

	a := &analyzer{
		global:      global,
		components:  components,
		compScopes:  compScopes,
		structs:     structs,
		mainScope:   NewEnclosedSymbolTable(global),
		instanceIDs: make(map[string]*ast.ComponentInstance),
	}

	for _, c := range unit.Components() {
		if err := a.analyzeComponentHeader(c); err != nil {
			return nil, err
		}
	}
	for _, c := range unit.Components() {
		if err := a.analyzeComponentBodies(c); err != nil {
			return nil, err
		}
	}

	res := &Result{Global: global, Structs: structs, Components: components}

	scene := unit.Scene()
	if scene != nil {
		if err := a.indexInstances(scene); err != nil {
			return nil, err
		}
		res.Instances = a.instances
		if err := a.resolveBindings(scene, nil); err != nil {
			return nil, err
		}
		order, err := a.buildMemberInitOrder()
		if err != nil {
			return nil, err
		}
		res.MemberInit = order
		res.Scene = scene
	}

	return res, nil
}

// analyzer carries the mutable state threaded through every phase.
type analyzer struct {
	global     *SymbolTable
	components map[string]*ast.ComponentDef
	compScopes map[string]*SymbolTable
	structs    map[string]*ast.StructDecl

	// mainScope is the virtual outer function scope instance ids are
	// defined in, so any binding expression can reach any instance by id
	// regardless of where in the tree it sits.
	mainScope *SymbolTable

	instances   []*ast.ComponentInstance
	instanceIDs map[string]*ast.ComponentInstance

	// bindingDeps accumulates "<id>[<idx>] depends on <id>[<idx>]" edges
	// discovered while resolving binding expressions (phase 2).
	bindingDeps [][2]string
}

func bindingID(instanceID string, propIndex int) string {
	return fmt.Sprintf("%s[%d]", instanceID, propIndex)
}
