package lexer

import (
	"testing"

	"github.com/jialihong/rectangle/internal/token"
)

func allTokens(src string) []token.Token {
	l := New(src, 1, 1)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func TestNextTokenBasics(t *testing.T) {
	input := `int x: 5 + 10;`

	tests := []struct {
		kind    token.Kind
		literal string
	}{
		{token.KW_INT, "int"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.INT, "5"},
		{token.PLUS, "+"},
		{token.INT, "10"},
		{token.SEMI, ";"},
		{token.EOF, ""},
	}

	l := New(input, 1, 1)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v (literal=%q)", i, tt.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "if else while break continue return def enum int float string void list"
	want := []token.Kind{
		token.IF, token.ELSE, token.WHILE, token.BREAK, token.CONTINUE,
		token.RETURN, token.DEF, token.ENUM, token.KW_INT, token.KW_FLOAT,
		token.KW_STRING, token.KW_VOID, token.KW_LIST, token.EOF,
	}
	toks := allTokens(input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestOperators(t *testing.T) {
	input := "&& || == != <= >= < > = + - * / % ! . , : ; { } [ ] ( )"
	want := []token.Kind{
		token.AND, token.OR, token.EQ, token.NEQ, token.LE, token.GE,
		token.LT, token.GT, token.ASSIGN, token.PLUS, token.MINUS,
		token.STAR, token.SLASH, token.PERCENT, token.NOT, token.DOT,
		token.COMMA, token.COLON, token.SEMI, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.LPAREN, token.RPAREN, token.EOF,
	}
	toks := allTokens(input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLoneAmpersandIsIllegal(t *testing.T) {
	toks := allTokens("&")
	if toks[0].Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", toks[0].Kind)
	}
	kind, _ := Classify(toks[0].Literal)
	if kind != "IllegalSymbol" {
		t.Errorf("expected IllegalSymbol, got %s", kind)
	}
}

func TestUnclosedStringLiteral(t *testing.T) {
	toks := allTokens(`"hello`)
	if toks[0].Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", toks[0].Kind)
	}
	kind, _ := Classify(toks[0].Literal)
	if kind != "UnclosedStringLiteral" {
		t.Errorf("expected UnclosedStringLiteral, got %s", kind)
	}
}

func TestStrayNewlineInStringLiteral(t *testing.T) {
	toks := allTokens("\"hello\nworld\"")
	if toks[0].Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", toks[0].Kind)
	}
	kind, _ := Classify(toks[0].Literal)
	if kind != "StrayNewlineInStringLiteral" {
		t.Errorf("expected StrayNewlineInStringLiteral, got %s", kind)
	}
}

func TestFloatLiteral(t *testing.T) {
	toks := allTokens("123.45")
	if toks[0].Kind != token.FLOAT || toks[0].Literal != "123.45" {
		t.Fatalf("got %v %q", toks[0].Kind, toks[0].Literal)
	}
}

func TestLineComment(t *testing.T) {
	input := "// a comment\nx"
	l := New(input, 1, 1)
	tok := l.NextToken()
	if tok.Kind != token.COMMENT {
		t.Fatalf("expected COMMENT, got %v", tok.Kind)
	}
	tok = l.NextToken()
	if tok.Kind != token.IDENT || tok.Literal != "x" {
		t.Fatalf("expected IDENT x, got %v %q", tok.Kind, tok.Literal)
	}
}

func TestCRLFNormalizesLineCounting(t *testing.T) {
	input := "a\r\nb"
	l := New(input, 1, 1)
	first := l.NextToken()
	if first.Pos.Line != 1 {
		t.Fatalf("expected line 1, got %d", first.Pos.Line)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 {
		t.Fatalf("expected line 2, got %d", second.Pos.Line)
	}
}

func TestEveryStreamEndsWithExactlyOneEOF(t *testing.T) {
	inputs := []string{"", "x", "int y: 1;", "// comment only"}
	for _, in := range inputs {
		toks := allTokens(in)
		eofCount := 0
		for i, tok := range toks {
			if tok.Kind == token.EOF {
				eofCount++
				if i != len(toks)-1 {
					t.Errorf("input %q: EOF not last token", in)
				}
			}
		}
		if eofCount != 1 {
			t.Errorf("input %q: expected exactly one EOF, got %d", in, eofCount)
		}
	}
}

func TestRelexRoundTrip(t *testing.T) {
	input := `Rectangle { id: r width: 3 + 4 * 2 fill_color: "red" }`
	first := allTokens(input)

	var rebuilt []string
	for _, tok := range first {
		if tok.Kind == token.COMMENT || tok.Kind == token.EOF {
			continue
		}
		if tok.Kind == token.STRING {
			rebuilt = append(rebuilt, `"`+tok.Literal+`"`)
			continue
		}
		rebuilt = append(rebuilt, tok.Literal)
	}
	second := allTokens(joinWithSpace(rebuilt))

	nonComment := func(toks []token.Token) []token.Token {
		out := make([]token.Token, 0, len(toks))
		for _, tok := range toks {
			if tok.Kind != token.COMMENT {
				out = append(out, tok)
			}
		}
		return out
	}

	a, b := nonComment(first), nonComment(second)
	if len(a) != len(b) {
		t.Fatalf("re-lexed stream has different length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Literal != b[i].Literal {
			t.Errorf("token %d differs: %v %q vs %v %q", i, a[i].Kind, a[i].Literal, b[i].Kind, b[i].Literal)
		}
	}
}

func joinWithSpace(lits []string) string {
	out := ""
	for i, s := range lits {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
