package parser

import (
	"testing"

	"github.com/jialihong/rectangle/internal/ast"
)

func TestParseComponentDefinition(t *testing.T) {
	src := `def Box {
		int width: 10;
		int height: width + 5;
		int area() {
			return width * height;
		}
	}`

	doc, err := ParseFile("box.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Kind != ast.ComponentDefDocument {
		t.Fatalf("expect ComponentDefDocument, got %v", doc.Kind)
	}
	comp := doc.Comp
	if comp.Name != "Box" {
		t.Fatalf("expect name Box, got %q", comp.Name)
	}
	if len(comp.Properties) != 2 {
		t.Fatalf("expect 2 properties, got %d", len(comp.Properties))
	}
	if len(comp.Methods) != 1 {
		t.Fatalf("expect 1 method, got %d", len(comp.Methods))
	}
	method := comp.Methods[0]
	if len(method.Body.Items) != 1 {
		t.Fatalf("expect synthesized single return, got %d items", len(method.Body.Items))
	}
	if _, ok := method.Body.Items[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("expect last item to be a return, got %T", method.Body.Items[0])
	}
}

func TestParseFunctionSynthesizesMissingReturn(t *testing.T) {
	src := `def Noop {
		void tick() {
			int x: 1;
		}
	}`
	doc, err := ParseFile("noop.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	method := doc.Comp.Methods[0]
	last := method.Body.Items[len(method.Body.Items)-1]
	ret, ok := last.(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expect synthesized return, got %T", last)
	}
	if ret.Value != nil {
		t.Fatalf("expect a bare return, got value %v", ret.Value)
	}
}

func TestParseComponentInstanceWithChildrenAndBindings(t *testing.T) {
	src := `Scene {
		id: root
		width: 100
		Box {
			id: a
			width: 10
		}
		Box {
			id: b
			width: a.width + 5
		}
	}`

	doc, err := ParseFile("scene.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Kind != ast.ComponentInstanceDocument {
		t.Fatalf("expect ComponentInstanceDocument, got %v", doc.Kind)
	}
	root := doc.Instance
	if root.ComponentName != "Scene" {
		t.Fatalf("expect Scene, got %q", root.ComponentName)
	}
	if len(root.Bindings) != 2 {
		t.Fatalf("expect 2 bindings, got %d", len(root.Bindings))
	}
	if len(root.Children) != 2 {
		t.Fatalf("expect 2 children, got %d", len(root.Children))
	}
	for _, child := range root.Children {
		if child.Parent != root {
			t.Fatalf("expect child.Parent == root")
		}
	}

	second := root.Children[1]
	if len(second.Bindings) != 2 {
		t.Fatalf("expect 2 bindings on second child, got %d", len(second.Bindings))
	}
	widthExpr := second.Bindings[1].Value
	bin, ok := widthExpr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expect a binary expr for width, got %T", widthExpr)
	}
	if bin.Op != ast.OpAdd {
		t.Fatalf("expect +, got %v", bin.Op)
	}
	member, ok := bin.Left.(*ast.MemberExpr)
	if !ok {
		t.Fatalf("expect member expr lhs, got %T", bin.Left)
	}
	if member.Name != "width" {
		t.Fatalf("expect .width, got %q", member.Name)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	src := `def E {
		int compute() {
			return 1 + 2 * 3 == 7 && !0 || 1;
		}
	}`
	doc, err := ParseFile("e.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret := doc.Comp.Methods[0].Body.Items[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || top.Op != ast.OpOr {
		t.Fatalf("expect top-level ||, got %#v", ret.Value)
	}
	and, ok := top.Left.(*ast.BinaryExpr)
	if !ok || and.Op != ast.OpAnd {
		t.Fatalf("expect && under ||, got %#v", top.Left)
	}
	eq, ok := and.Left.(*ast.BinaryExpr)
	if !ok || eq.Op != ast.OpEq {
		t.Fatalf("expect == under &&, got %#v", and.Left)
	}
	add, ok := eq.Left.(*ast.BinaryExpr)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("expect + on the lhs of ==, got %#v", eq.Left)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("expect * to bind tighter than +, got %#v", add.Right)
	}
}

func TestParseAssignmentIsStatementOnly(t *testing.T) {
	src := `def C {
		void run() {
			int x: 0;
			x = x + 1;
		}
	}`
	doc, err := ParseFile("c.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := doc.Comp.Methods[0].Body
	exprStmt, ok := body.Items[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expect second item to be an expr statement, got %T", body.Items[1])
	}
	assign, ok := exprStmt.X.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expect an assign expr, got %T", exprStmt.X)
	}
	ref, ok := assign.Target.(*ast.RefExpr)
	if !ok || ref.Name != "x" {
		t.Fatalf("expect target ref x, got %#v", assign.Target)
	}
}

func TestParseListType(t *testing.T) {
	src := `def L {
		list<int> nums: {1, 2, 3};
	}`
	doc, err := ParseFile("l.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prop := doc.Comp.Properties[0]
	if prop.Type.String() != "list<int>" {
		t.Fatalf("expect list<int>, got %s", prop.Type.String())
	}
	lit, ok := prop.Init.(*ast.InitListExpr)
	if !ok {
		t.Fatalf("expect an init list, got %T", prop.Init)
	}
	if len(lit.Elements) != 3 {
		t.Fatalf("expect 3 elements, got %d", len(lit.Elements))
	}
}

func TestParseEnumDefinition(t *testing.T) {
	src := `def Shape {
		enum Kind {
			Circle, Square, Triangle
		}
	}`
	doc, err := ParseFile("shape.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	enum := doc.Comp.Enums[0]
	if enum.Name != "Kind" {
		t.Fatalf("expect Kind, got %q", enum.Name)
	}
	if len(enum.Constants) != 3 {
		t.Fatalf("expect 3 constants, got %d", len(enum.Constants))
	}
	for _, c := range enum.Constants {
		if c.Value != 0 {
			t.Fatalf("expect sequential values assigned by the symbol pass, not the parser; got %d for %q", c.Value, c.Name)
		}
	}
}

func TestParseCallAndIndexChain(t *testing.T) {
	src := `def F {
		int pick(list<int> xs, int i) {
			return xs[i];
		}
		int run() {
			return pick({1, 2, 3}, 0) + len({1, 2});
		}
	}`
	doc, err := ParseFile("f.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Comp.Methods) != 2 {
		t.Fatalf("expect 2 methods, got %d", len(doc.Comp.Methods))
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	src := `def Bad {
		int x 10;
	}`
	_, err := ParseFile("bad.rec", src)
	if err == nil {
		t.Fatalf("expect a parse error")
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	src := `def C {
		int classify(int x) {
			if (x < 0) {
				return 0;
			} else if (x == 0) {
				return 1;
			} else {
				return 2;
			}
		}
	}`
	doc, err := ParseFile("chain.rec", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	method := doc.Comp.Methods[0]
	ifStmt, ok := method.Body.Items[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expect an if statement, got %T", method.Body.Items[0])
	}
	if ifStmt.Else == nil {
		t.Fatalf("expect an else branch")
	}
	if len(ifStmt.Else.Items) != 1 {
		t.Fatalf("expect the else-if to be wrapped as a single nested if, got %d items", len(ifStmt.Else.Items))
	}
	if _, ok := ifStmt.Else.Items[0].(*ast.IfStmt); !ok {
		t.Fatalf("expect a nested if, got %T", ifStmt.Else.Items[0])
	}
}
