// Package rectangle is the public façade over the compiler and VM: given
// one or more source documents it runs the full pipeline (parse, analyze,
// emit, assemble, execute) and returns the rendered SVG, mirroring how the
// teacher's pkg/dwscript package wraps lexer/parser/semantic/interp behind
// a small Engine type.
package rectangle

import (
	"fmt"
	"io"

	"github.com/jialihong/rectangle/internal/asm"
	"github.com/jialihong/rectangle/internal/ast"
	"github.com/jialihong/rectangle/internal/codegen"
	"github.com/jialihong/rectangle/internal/diag"
	"github.com/jialihong/rectangle/internal/draw"
	"github.com/jialihong/rectangle/internal/parser"
	"github.com/jialihong/rectangle/internal/semantic"
	"github.com/jialihong/rectangle/internal/vm"
)

// Source is one named input document; Name is used only for diagnostics.
type Source struct {
	Name string
	Text string
}

// Engine holds cross-call configuration (currently just diagnostics).
type Engine struct {
	diag diag.Config
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithDiag attaches a diagnostics configuration; the zero Config discards
// everything.
func WithDiag(cfg diag.Config) Option {
	return func(e *Engine) { e.diag = cfg }
}

// New builds an Engine. With no options, diagnostics are discarded.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CompileResult bundles everything a successful compile produces: the
// semantic analysis (for tools that want the instance tree or symbol
// table), the textual assembly (for --dump-asm), and the assembled
// Program (for --dump-bytecode and for Run).
type CompileResult struct {
	Semantic *semantic.Result
	Assembly string
	Program  *asm.Program
}

// Compile parses every source as one compile unit, analyzes it, and
// assembles it to bytecode. It does not execute anything.
func (e *Engine) Compile(sources []Source) (*CompileResult, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("rectangle: no source documents provided")
	}

	unit := &ast.CompileUnit{}
	for _, src := range sources {
		doc, err := parser.ParseFile(src.Name, src.Text)
		if err != nil {
			return nil, err
		}
		unit.AddDocument(doc)
	}

	res, err := semantic.Analyze(unit)
	if err != nil {
		return nil, err
	}

	text, err := codegen.Emit(res)
	if err != nil {
		return nil, err
	}
	e.diag.Tracef(e.diag.DumpAsm, "%s", text)

	prog, err := asm.Assemble(text)
	if err != nil {
		return nil, err
	}

	return &CompileResult{Semantic: res, Assembly: text, Program: prog}, nil
}

// Run compiles sources and executes the resulting program, writing any
// print() output to stdout and returning the rendered SVG document.
func (e *Engine) Run(sources []Source, stdout io.Writer) (string, error) {
	result, err := e.Compile(sources)
	if err != nil {
		return "", err
	}
	if result.Semantic.Scene == nil {
		return "", fmt.Errorf("rectangle: no instance document to draw")
	}

	scene := draw.NewScene()
	m := vm.New(stdout, scene)
	if err := m.Run(result.Program); err != nil {
		return "", err
	}
	return scene.Generate(), nil
}
