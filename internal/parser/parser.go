// Package parser implements the recursive-descent parser described in
// spec.md §4.2: documents, component definitions/instances, statements,
// expressions, and the two points of bounded speculative backtracking
// (member-item disambiguation and block-item disambiguation).
package parser

import (
	"github.com/jialihong/rectangle/internal/ast"
	cerrors "github.com/jialihong/rectangle/internal/errors"
	"github.com/jialihong/rectangle/internal/lexer"
	"github.com/jialihong/rectangle/internal/sourcemap"
	"github.com/jialihong/rectangle/internal/token"
)

// Parser holds the token buffer and the file/source context used to
// annotate errors.
type Parser struct {
	c    *cursor
	file string
	src  *sourcemap.File
}

// New buffers every token lex emits for code (skipping comments) and
// returns a Parser ready to parse one document.
func New(file, code string) *Parser {
	l := lexer.New(code, 1, 1)
	var toks []token.Token
	for {
		t := l.NextToken()
		if t.Kind == token.COMMENT {
			continue
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return &Parser{c: newCursor(toks), file: file, src: sourcemap.New(file, code)}
}

// parseError is panicked by match/expect failures and caught at the public
// entry points and at the two try* backtracking boundaries.
type parseError struct{ err *cerrors.CompileError }

func (p *Parser) fail(pos token.Position, format string, args ...any) {
	panic(parseError{err: cerrors.NewInSource(cerrors.Parse, p.file, p.src, pos, format, args...)})
}

// match consumes the current token if it has kind k, else fails.
func (p *Parser) match(k token.Kind) token.Token {
	if !p.c.is(k) {
		cur := p.c.cur()
		p.fail(cur.Pos, "expect %s, got %s(%q)", k, cur.Kind, cur.Literal)
	}
	return p.c.advance()
}

// ParseDocument parses exactly one top-level document (spec.md §3): a
// component definition (`def Name { ... }`) or a component instance
// (`Name { ... }`), followed by EOF.
func (p *Parser) ParseDocument() (doc *ast.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			err = pe.err
		}
	}()

	var d *ast.Document
	switch {
	case p.c.is(token.DEF):
		def := p.parseComponentDefinition()
		d = &ast.Document{Kind: ast.ComponentDefDocument, Path: p.file, Comp: def}
	case p.c.is(token.IDENT):
		inst := p.parseComponentInstance()
		d = &ast.Document{Kind: ast.ComponentInstanceDocument, Path: p.file, Instance: inst}
	default:
		cur := p.c.cur()
		p.fail(cur.Pos, "expect 'def' or an identifier, got %s(%q)", cur.Kind, cur.Literal)
	}
	p.match(token.EOF)
	return d, nil
}

// ParseFile is a convenience wrapper combining New and ParseDocument.
func ParseFile(file, code string) (*ast.Document, error) {
	return New(file, code).ParseDocument()
}
