package parser

import "github.com/jialihong/rectangle/internal/token"

// cursor walks a pre-lexed token buffer with a save/restore mark and a
// "trying" depth counter, mirroring the recursive-descent parser's bounded
// speculative backtracking. No rule consults the counter: a rule entered
// while trying() is true builds AST nodes exactly as in a real parse, and
// tryParse discards them when it restores the mark.
type cursor struct {
	toks   []token.Token
	pos    int
	trying int
}

func newCursor(toks []token.Token) *cursor {
	return &cursor{toks: toks}
}

// cur returns the token at the cursor, or the final (EOF) token if pos has
// run past the end of the buffer.
func (c *cursor) cur() token.Token {
	if c.pos >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[c.pos]
}

func (c *cursor) peek(n int) token.Token {
	i := c.pos + n
	if i < 0 {
		i = 0
	}
	if i >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[i]
}

func (c *cursor) is(k token.Kind) bool {
	return c.cur().Kind == k
}

func (c *cursor) isAny(kinds ...token.Kind) bool {
	k := c.cur().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// advance consumes the current token and returns it.
func (c *cursor) advance() token.Token {
	t := c.cur()
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return t
}

// unread moves the cursor back one position, re-exposing the token just
// consumed. Used by the binding-vs-child-instance one-token lookahead.
func (c *cursor) unread() {
	if c.pos > 0 {
		c.pos--
	}
}

func (c *cursor) mark() int {
	return c.pos
}

func (c *cursor) reset(mark int) {
	c.pos = mark
}

func (c *cursor) incTrying() { c.trying++ }
func (c *cursor) decTrying() { c.trying-- }
func (c *cursor) isTrying() bool { return c.trying > 0 }
