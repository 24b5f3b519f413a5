package vm_test

import (
	"strings"
	"testing"

	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/asm"
	"github.com/jialihong/rectangle/internal/codegen"
	"github.com/jialihong/rectangle/internal/draw"
	"github.com/jialihong/rectangle/internal/parser"
	"github.com/jialihong/rectangle/internal/semantic"
	"github.com/jialihong/rectangle/internal/vm"
)

func compileToProgram(t *testing.T, sources map[string]string) *asm.Program {
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
	text, err := codegen.Emit(res)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	prog, err := asm.Assemble(text)
	if err != nil {
		t.Fatalf("assemble: %v\n%s", err, text)
	}
	return prog
}

func TestRunRectangleProducesSVG(t *testing.T) {
	prog := compileToProgram(t, map[string]string{
		"box.rec": `def Box {
			int x: 0;
			int y: 0;
			int width: 10;
			int height: 10;
			void draw() {
				defineScene(0, 0, 0, 0, 100, 100);
				drawRect(x, y, width, height, "red", "black", "", 1);
			}
		}`,
		"scene.rec": `Box { x: 5 y: 5 }`,
	})

	scene := draw.NewScene()
	m := vm.New(nil, scene)
	if err := m.Run(prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	svg := scene.Generate()
	if !strings.Contains(svg, `x="5"`) || !strings.Contains(svg, `y="5"`) {
		t.Fatalf("expect the bound x/y to reach the rect, got:\n%s", svg)
	}
	if !strings.Contains(svg, `fill:red`) {
		t.Fatalf("expect the fill color to reach the rect, got:\n%s", svg)
	}
}

func TestRunArithmeticViaPrint(t *testing.T) {
	prog := compileToProgram(t, map[string]string{
		"box.rec": `def Box {
			void draw() {
				print(3 + 4 * 2);
			}
		}`,
		"scene.rec": `Box { }`,
	})

	var out strings.Builder
	m := vm.New(&out, draw.NewScene())
	if err := m.Run(prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "11" {
		t.Fatalf("expect print(3+4*2) to write 11, got %q", out.String())
	}
}

func TestRunCrossInstanceBinding(t *testing.T) {
	prog := compileToProgram(t, map[string]string{
		"box.rec": `def Box { int width: 0; void draw() { print(width); } }`,
		"scene.rec": `Scene {
			Box { id: a width: 10 }
			Box { id: b width: a.width + 5 }
		}`,
		"scene_root.rec": `def Scene { }`,
	})

	var out strings.Builder
	m := vm.New(&out, draw.NewScene())
	if err := m.Run(prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "1015" {
		t.Fatalf("expect draw order a then b to print 10 then 15, got %q", out.String())
	}
}

func TestRunLenBuiltin(t *testing.T) {
	prog := compileToProgram(t, map[string]string{
		"box.rec": `def Box {
			void draw() {
				print(len({1, 2, 3}));
				print(len("abcd"));
			}
		}`,
		"scene.rec": `Box { }`,
	})

	var out strings.Builder
	m := vm.New(&out, draw.NewScene())
	if err := m.Run(prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "34" {
		t.Fatalf("expect len({1,2,3}) then len(\"abcd\") to print 3 then 4, got %q", out.String())
	}
}

func TestRunWhileLoopWithBreak(t *testing.T) {
	prog := compileToProgram(t, map[string]string{
		"box.rec": `def Box {
			void draw() {
				int i: 0;
				while (i < 10) {
					if (i == 3) {
						break;
					}
					print(i);
					i = i + 1;
				}
			}
		}`,
		"scene.rec": `Box { }`,
	})

	var out strings.Builder
	m := vm.New(&out, draw.NewScene())
	if err := m.Run(prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "012" {
		t.Fatalf("expect the loop to print 0,1,2 then break, got %q", out.String())
	}
}
