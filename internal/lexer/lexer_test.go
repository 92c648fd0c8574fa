package lexer

import (
	"testing"

	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/pipeline"
	"github.com/funvibe/aurora/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `x = 5 + 10.5
fn add a, b -> a + b
xs:0 += 1
ys = [1, 2] -> (v -> v * 2) |> print
if a <= b and c != d or not e end
exists? map! done
m = {"k": "v\n", r: ` + "`raw\\n`" + `}
# a comment
do end`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.PLUS, "+"},
		{token.FLOAT, "10.5"},
		{token.NEWLINE, "\n"},
		{token.FN, "fn"},
		{token.IDENT, "add"},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.ARROW, "->"},
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "xs"},
		{token.COLON, ":"},
		{token.INT, "0"},
		{token.PLUS_ASSIGN, "+="},
		{token.INT, "1"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "ys"},
		{token.ASSIGN, "="},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.RBRACKET, "]"},
		{token.ARROW, "->"},
		{token.LPAREN, "("},
		{token.IDENT, "v"},
		{token.ARROW, "->"},
		{token.IDENT, "v"},
		{token.ASTERISK, "*"},
		{token.INT, "2"},
		{token.RPAREN, ")"},
		{token.PIPE, "|>"},
		{token.IDENT, "print"},
		{token.NEWLINE, "\n"},
		{token.IF, "if"},
		{token.IDENT, "a"},
		{token.LTE, "<="},
		{token.IDENT, "b"},
		{token.AND, "and"},
		{token.IDENT, "c"},
		{token.NOT_EQ, "!="},
		{token.IDENT, "d"},
		{token.OR, "or"},
		{token.NOT, "not"},
		{token.IDENT, "e"},
		{token.END, "end"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "exists?"},
		{token.IDENT, "map!"},
		{token.IDENT, "done"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "m"},
		{token.ASSIGN, "="},
		{token.LBRACE, "{"},
		{token.STRING, `"k"`},
		{token.COLON, ":"},
		{token.STRING, `"v\n"`},
		{token.COMMA, ","},
		{token.IDENT, "r"},
		{token.COLON, ":"},
		{token.STRING, "`raw\\n`"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.NEWLINE, "\n"},
		{token.DO, "do"},
		{token.END, "end"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"42", int64(42)},
		{"3.25", 3.25},
		{`"a\tb\"c\\"`, "a\tb\"c\\"},
		{`"line\0"`, "line\x00"},
		{`"odd \q"`, `odd \q`},
		{"`a\\nb`", `a\nb`},
		{"true", true},
		{"false", false},
		{"\"multi\nline\"", "multi\nline"},
	}

	for _, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Literal != tt.expected {
			t.Errorf("%q: expected literal %#v, got %#v", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestNumberFollowedByDot(t *testing.T) {
	// "1." is an int followed by an illegal '.', not a float
	l := New("1.")
	if tok := l.NextToken(); tok.Type != token.INT {
		t.Fatalf("expected INT, got %s", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
}

func TestPositions(t *testing.T) {
	l := New("a = 1\n  bb = \"é\" + c")
	tests := []struct {
		lexeme string
		line   int
		column int
	}{
		{"a", 1, 1},
		{"=", 1, 3},
		{"1", 1, 5},
		{"\n", 1, 6},
		{"bb", 2, 3},
		{"=", 2, 6},
		{`"é"`, 2, 8},
		{"+", 2, 12},
		{"c", 2, 14},
	}
	for _, tt := range tests {
		tok := l.NextToken()
		if tok.Lexeme != tt.lexeme || tok.Line != tt.line || tok.Column != tt.column {
			t.Errorf("expected %q at %d:%d, got %s", tt.lexeme, tt.line, tt.column, tok)
		}
	}
}

func TestBangBeforeEquals(t *testing.T) {
	toks := New("a!=b").Tokenize()
	want := []token.TokenType{token.IDENT, token.NOT_EQ, token.IDENT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: expected %s, got %s", i, tt, toks[i].Type)
		}
	}
}

func TestIntegerOutOfRange(t *testing.T) {
	tok := New("99999999999999999999").NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
}

func TestProcessorErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
		line  int
	}{
		{"x = 1 @ 2", diagnostics.ErrL001, 1},
		{"x = 1\ny = \"open", diagnostics.ErrL002, 2},
		{"x = `open", diagnostics.ErrL002, 1},
		{"a | b", diagnostics.ErrL001, 1},
	}

	for _, tt := range tests {
		ctx := pipeline.NewPipelineContext(tt.input)
		(&LexerProcessor{}).Process(ctx)
		if len(ctx.Errors) != 1 {
			t.Fatalf("%q: expected 1 error, got %d", tt.input, len(ctx.Errors))
		}
		err := ctx.Errors[0]
		if err.Code != tt.code {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.code, err.Code)
		}
		if err.Token.Line != tt.line {
			t.Errorf("%q: expected line %d, got %d", tt.input, tt.line, err.Token.Line)
		}
		if ctx.TokenStream != nil {
			t.Errorf("%q: token stream should be empty after a lexer error", tt.input)
		}
	}
}
