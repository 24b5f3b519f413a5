package codegen_test

import (
	"strings"
	"testing"

	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/codegen"
	"github.com/jialihong/rectangle/internal/parser"
	"github.com/jialihong/rectangle/internal/semantic"
)

func analyze(t *testing.T, sources map[string]string) *semantic.Result {
	t.Helper()
	unit := &ast.CompileUnit{}
	for file, src := range sources {
		doc, err := parser.ParseFile(file, src)
		if err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}
		unit.AddDocument(doc)
	}
	res, err := semantic.Analyze(unit)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return res
}

func TestEmitMainAllocatesAndInitsInstances(t *testing.T) {
	res := analyze(t, map[string]string{
		"box.rec":   `def Box { int width: 10; }`,
		"scene.rec": `Box { width: 20 }`,
	})
	text, err := codegen.Emit(res)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(text, ".def main 0 1") {
		t.Fatalf("expect a one-local main function, got:\n%s", text)
	}
	if !strings.Contains(text, "struct 1") {
		t.Fatalf("expect the Box instance to allocate a 1-field struct, got:\n%s", text)
	}
	if !strings.Contains(text, "iconst 20") {
		t.Fatalf("expect the bound value 20 to be emitted, got:\n%s", text)
	}
	if !strings.Contains(text, "halt") {
		t.Fatalf("expect main to end with halt, got:\n%s", text)
	}
}

func TestEmitMethodHeaderAndBody(t *testing.T) {
	res := analyze(t, map[string]string{
		"box.rec": `def Box {
			int width: 10;
			int height: 5;
			int area() {
				return width * height;
			}
		}`,
	})
	text, err := codegen.Emit(res)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(text, ".def Box.area 1 0") {
		t.Fatalf("expect a Box.area function header with 1 arg (self) and 0 locals, got:\n%s", text)
	}
	if !strings.Contains(text, "imul") {
		t.Fatalf("expect an integer multiply for width * height, got:\n%s", text)
	}
	if !strings.Contains(text, "ret") {
		t.Fatalf("expect a ret, got:\n%s", text)
	}
}

func TestEmitIfAndWhileLabels(t *testing.T) {
	res := analyze(t, map[string]string{
		"box.rec": `def Box {
			void run() {
				int i: 0;
				while (i < 10) {
					if (i == 5) {
						break;
					}
					i = i + 1;
				}
			}
		}`,
	})
	text, err := codegen.Emit(res)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(text, "brf") || !strings.Contains(text, "br .L") {
		t.Fatalf("expect conditional and unconditional branches, got:\n%s", text)
	}
}

func TestEmitDrawCallBuildsStruct(t *testing.T) {
	res := analyze(t, map[string]string{
		"box.rec": `def Box {
			void draw() {
				drawRect(0, 0, 10, 10, "red", "black", "", 1);
			}
		}`,
		"scene.rec": `Box { }`,
	})
	text, err := codegen.Emit(res)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(text, "struct 8") {
		t.Fatalf("expect an 8-field svg_rect struct, got:\n%s", text)
	}
	if !strings.Contains(text, "drawRect") {
		t.Fatalf("expect the drawRect opcode, got:\n%s", text)
	}
	if !strings.Contains(text, `sconst "red"`) {
		t.Fatalf("expect the fill color string constant, got:\n%s", text)
	}
}

func TestEmitCrossInstanceBindingUsesInstanceIndex(t *testing.T) {
	res := analyze(t, map[string]string{
		"box.rec": `def Box { int width: 0; }`,
		"scene.rec": `Scene {
			Box { id: a width: 10 }
			Box { id: b width: a.width + 5 }
		}`,
		"scene_root.rec": `def Scene { }`,
	})
	text, err := codegen.Emit(res)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(text, "fload 0") {
		t.Fatalf("expect a field load for a.width, got:\n%s", text)
	}
	if !strings.Contains(text, "iadd") {
		t.Fatalf("expect an integer add for a.width + 5, got:\n%s", text)
	}
}
