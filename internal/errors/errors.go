// Package errors provides the compiler's error taxonomy (spec.md §7) and a
// shared formatter that prints a source line with an ASCII caret, matching
// the teacher's internal/errors package.
package errors

import (
	"fmt"
	"strings"

	"github.com/jialihong/rectangle/internal/sourcemap"
	"github.com/jialihong/rectangle/internal/token"
)

// Category tags which stage of the pipeline raised the error.
type Category int

const (
	Lexical Category = iota
	Parse
	Semantic
	Internal
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical error"
	case Parse:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Internal:
		return "internal error"
	default:
		return "error"
	}
}

// CompileError is the single error type returned by every pipeline stage.
// It carries enough context (file, position, source text) to render a caret
// diagnostic without the caller threading extra state around.
type CompileError struct {
	Category Category
	Message  string
	File     string
	Pos      token.Position
	Source   *sourcemap.File // optional, nil when the position has no backing file
}

func (e *CompileError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-line caret. When color is true,
// ANSI escapes highlight the caret for terminal output.
func (e *CompileError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s: %s:%d:%d: %s\n", e.Category, e.File, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s: %d:%d: %s\n", e.Category, e.Pos.Line, e.Pos.Column, e.Message)
	}

	if e.Source == nil {
		return strings.TrimRight(sb.String(), "\n")
	}

	line := e.Source.Line(e.Pos.Line)
	prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(prefix)+max0(e.Pos.Column-1)))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// New builds a CompileError without a backing source file (used for
// internal invariant failures that have no meaningful source position).
func New(cat Category, pos token.Position, format string, args ...any) *CompileError {
	return &CompileError{Category: cat, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NewInSource builds a CompileError with a source file attached so Format
// can render the offending line.
func NewInSource(cat Category, file string, src *sourcemap.File, pos token.Position, format string, args ...any) *CompileError {
	return &CompileError{Category: cat, Message: fmt.Sprintf(format, args...), File: file, Pos: pos, Source: src}
}

func Lexerf(pos token.Position, format string, args ...any) *CompileError {
	return New(Lexical, pos, format, args...)
}

func Parsef(pos token.Position, format string, args ...any) *CompileError {
	return New(Parse, pos, format, args...)
}

func Semanticf(pos token.Position, format string, args ...any) *CompileError {
	return New(Semantic, pos, format, args...)
}

// Internalf builds an InternalInvariant error: these indicate a compiler
// bug, never a user mistake, and callers at the CLI boundary should report
// them distinctly (e.g. asking the user to file an issue).
func Internalf(pos token.Position, format string, args ...any) *CompileError {
	return New(Internal, pos, format, args...)
}
