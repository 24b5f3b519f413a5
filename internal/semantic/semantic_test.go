package semantic_test

import (
	"strings"
	"testing"

	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/parser"
	"github.com/jialihong/rectangle/internal/semantic"
)

func mustUnit(t *testing.T, sources map[string]string) *ast.CompileUnit {
	t.Helper()
	unit := &ast.CompileUnit{}
	for file, src := range sources {
		doc, err := parser.ParseFile(file, src)
		if err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		unit.AddDocument(doc)
	}
	return unit
}

func TestAnalyzeComponentAndInstance(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec":   `def Box { int width: 10; }`,
		"scene.rec": `Box { width: 20 }`,
	})

	res, err := semantic.Analyze(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scene == nil {
		t.Fatalf("expect a scene")
	}
	if len(res.Instances) != 1 {
		t.Fatalf("expect 1 instance, got %d", len(res.Instances))
	}
	if len(res.MemberInit) != 1 {
		t.Fatalf("expect 1 member init entry, got %d", len(res.MemberInit))
	}
	lit, ok := res.MemberInit[0].Expr.(*ast.IntLit)
	if !ok || lit.Value != 20 {
		t.Fatalf("expect the bound value 20 to win over the default, got %#v", res.MemberInit[0].Expr)
	}
}

func TestAnalyzeUnboundPropertyUsesDefault(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec":   `def Box { int width: 10; }`,
		"scene.rec": `Box { }`,
	})
	res, err := semantic.Analyze(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit, ok := res.MemberInit[0].Expr.(*ast.IntLit)
	if !ok || lit.Value != 10 {
		t.Fatalf("expect the component default 10, got %#v", res.MemberInit[0].Expr)
	}
}

func TestAnalyzePropertyDependencyOrdering(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box {
			int a: 10;
			int b: a + 5;
		}`,
		"scene.rec": `Box { }`,
	})
	res, err := semantic.Analyze(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.MemberInit) != 2 {
		t.Fatalf("expect 2 entries, got %d", len(res.MemberInit))
	}
	if res.MemberInit[0].PropertyIndex != 0 || res.MemberInit[1].PropertyIndex != 1 {
		t.Fatalf("expect a (index 0) before b (index 1), got %#v", res.MemberInit)
	}
}

func TestAnalyzeBindingCrossInstanceDependency(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box { int width: 0; }`,
		"scene.rec": `Scene {
			Box { id: a width: 10 }
			Box { id: b width: a.width + 5 }
		}`,
		"scene_root.rec": `def Scene { }`,
	})
	res, err := semantic.Analyze(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	indexOf := func(instID string) int {
		for i, m := range res.MemberInit {
			if m.Instance.InstanceID == instID {
				return i
			}
		}
		t.Fatalf("no member-init entry for instance %q", instID)
		return -1
	}
	if indexOf("a") > indexOf("b") {
		t.Fatalf("expect a's cell to precede b's cell")
	}
}

func TestAnalyzeLoopDetected(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box {
			int a: b;
			int b: a;
		}`,
		"scene.rec": `Box { }`,
	})
	_, err := semantic.Analyze(unit)
	if err == nil || !strings.Contains(err.Error(), "Loop detected") {
		t.Fatalf("expect a loop-detected error, got %v", err)
	}
}

func TestAnalyzeUnknownComponent(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"scene.rec": `Ghost { }`,
	})
	_, err := semantic.Analyze(unit)
	if err == nil || !strings.Contains(err.Error(), "No component named") {
		t.Fatalf("expect an unknown-component error, got %v", err)
	}
}

func TestAnalyzeBindingTypeMismatch(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec":   `def Box { int width: 0; }`,
		"scene.rec": `Box { width: "nope" }`,
	})
	_, err := semantic.Analyze(unit)
	if err == nil {
		t.Fatalf("expect a type-mismatch error")
	}
}

func TestAnalyzeDuplicateComponentNames(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"a.rec": `def Box { int width: 0; }`,
		"b.rec": `def Box { int height: 0; }`,
	})
	_, err := semantic.Analyze(unit)
	if err == nil || !strings.Contains(err.Error(), "redefined") {
		t.Fatalf("expect a redefinition error, got %v", err)
	}
}

func TestAnalyzeMethodBodyAndReturnType(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box {
			int width: 10;
			int height: 5;
			int area() {
				return width * height;
			}
		}`,
	})
	res, err := semantic.Analyze(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	method := res.Components["Box"].Methods[0]
	if method.LocalCount != 1 {
		t.Fatalf("expect local count 1 (self only, no params/locals), got %d", method.LocalCount)
	}
}

func TestAnalyzeBuiltinCallAcceptsInitList(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box {
			void draw() {
				print({1, 2, 3});
			}
		}`,
	})
	if _, err := semantic.Analyze(unit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeEnumConstantSequentialValues(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"shape.rec": `def Shape {
			enum Kind { Circle, Square, Triangle }
			int kind: Circle;
		}`,
	})
	res, err := semantic.Analyze(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	enum := res.Components["Shape"].Enums[0]
	for i, c := range enum.Constants {
		if c.Value != i {
			t.Fatalf("expect %q to have value %d, got %d", c.Name, i, c.Value)
		}
	}
}

func TestAnalyzeIfConditionMustBeInt(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box {
			int area() {
				if (1.5) {
					return 1;
				}
				return 0;
			}
		}`,
	})
	_, err := semantic.Analyze(unit)
	if err == nil {
		t.Fatalf("expect an error for a non-int if condition")
	}
}

func TestAnalyzeBreakOutsideLoop(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box {
			void run() {
				break;
			}
		}`,
	})
	_, err := semantic.Analyze(unit)
	if err == nil || !strings.Contains(err.Error(), "break outside") {
		t.Fatalf("expect a break-outside-loop error, got %v", err)
	}
}

func TestAnalyzeWhileLoopAllowsBreak(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box {
			void run() {
				int i: 0;
				while (i < 10) {
					i = i + 1;
					if (i == 5) {
						break;
					}
				}
			}
		}`,
	})
	if _, err := semantic.Analyze(unit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeMultipleSceneDocumentsRejected(t *testing.T) {
	unit := mustUnit(t, map[string]string{
		"box.rec": `def Box { int width: 0; }`,
		"s1.rec":  `Box { }`,
		"s2.rec":  `Box { }`,
	})
	_, err := semantic.Analyze(unit)
	if err == nil {
		t.Fatalf("expect an error for multiple instance documents")
	}
}
