package prettyprinter

import (
	"testing"

	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/lexer"
	"github.com/funvibe/aurora/internal/parser"
	"github.com/funvibe/aurora/internal/pipeline"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if ctx.HasErrors() {
		t.Fatalf("parse %q: %s", input, ctx.Errors[0].Error())
	}
	return ctx.AstRoot
}

func TestPrintCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x=1+2*3", "x = 1 + 2 * 3\n"},
		{"x = (1 + 2) * 3", "x = (1 + 2) * 3\n"},
		{"x = a - (b - c)", "x = a - (b - c)\n"},
		{"x = (a - b) - c", "x = a - b - c\n"},
		{"x = -a", "x = -a\n"},
		{"x = -5", "x = -5\n"},
		{"x = not (a and b)", "x = not (a and b)\n"},
		{"x = not a and b", "x = not a and b\n"},
		{"x = xs:(i + 1)", "x = xs:(i + 1)\n"},
		{"xs:0 = xs:1 + 1", "xs:0 = xs:1 + 1\n"},
		{"x += 1", "x = x + 1\n"},
		{`m = {"a": 1, b: [1, 2]}`, `m = {"a": 1, b: [1, 2]}` + "\n"},
		{"x = `a\\n`", `x = "a\\n"` + "\n"},
		{`print "tab\there"`, `print "tab\there"` + "\n"},
		{"print(1, 2)", "print 1, 2\n"},
		{"f = (a, b -> a + b)", "f = (a, b -> a + b)\n"},
		{"g = (-> 1)", "g = (-> 1)\n"},
		{"ys = xs -> (v -> v * 2) |> sum", "ys = xs -> (v -> v * 2) |> sum\n"},
		{"fn add a, b -> a + b", "fn add a, b -> a + b\n"},
		{"sub show x -> print x", "sub show x -> print x\n"},
		{"while i < 3 i += 1", "while i < 3 i = i + 1\n"},
		{"if a print 1 else print 2", "if a print 1 else print 2\n"},
	}

	for _, tt := range tests {
		got := Print(parse(t, tt.input))
		if got != tt.expected {
			t.Errorf("%q:\nexpected %q\ngot      %q", tt.input, tt.expected, got)
		}
	}
}

func TestPrintBlocks(t *testing.T) {
	tests := []string{
		"if a\n    print 1\nelse if b\n    print 2\nelse\n    print 3\nend\n",
		"for x, xs\n    print x\nend\n",
		"fn fact n\n    if n <= 1 return 1\n    return n * fact(n - 1)\nend\n",
		"sub loop\n    while true\n        if done() break\n        step\n    end\nend\n",
		"switch x\ncase 1 print \"one\"\ncase 2\n    print \"two\"\nelse\n    print \"other\"\nend\n",
		"select\ncase x > 1 print \"big\"\nelse print \"small\"\nend\n",
		"times 3, do i\n    print i\nend\n",
	}

	for _, src := range tests {
		got := Print(parse(t, src))
		if got != src {
			t.Errorf("canonical source changed:\nexpected %q\ngot      %q", src, got)
		}
	}
}

func TestPrintIsIdempotent(t *testing.T) {
	inputs := []string{
		"x=[1,2,\n3]\ny = {a: 1\nb: 2}",
		"fn f a -> a:0:1 + (a:2 |> g(1))",
		"sub s\n  for k, m\n    if k == \"x\" continue\n    print k, m:k\n  end\nend",
		"r = xs\n  -> (v -> v + 1)\n  |> filter((v -> v % 2 == 0))",
		"if a\n  x = 1\nelse print 2\nend",
	}
	for _, src := range inputs {
		once := Print(parse(t, src))
		twice := Print(parse(t, once))
		if once != twice {
			t.Errorf("printing is not stable for %q:\nfirst  %q\nsecond %q", src, once, twice)
		}
	}
}
