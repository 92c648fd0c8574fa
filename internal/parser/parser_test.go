package parser

import (
	"strings"
	"testing"

	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/lexer"
	"github.com/funvibe/aurora/internal/pipeline"
	"github.com/funvibe/aurora/internal/token"
)

func run(input string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	return (&ParserProcessor{}).Process(ctx)
}

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := run(input)
	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			t.Errorf("parser error: %s", err.Error())
		}
		t.FailNow()
	}
	return ctx.AstRoot
}

// render prints an expression fully parenthesized.
func render(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.BinaryExpression:
		return "(" + render(n.Left) + " " + opText(n.Operator) + " " + render(n.Right) + ")"
	case *ast.UnaryExpression:
		if n.Operator == token.NOT {
			return "(not " + render(n.Right) + ")"
		}
		return "(" + string(n.Operator) + render(n.Right) + ")"
	case *ast.Literal:
		return n.Token.Lexeme
	case *ast.Variable:
		return n.Name
	case *ast.IndexExpression:
		return "(" + render(n.Target) + ":" + render(n.Index) + ")"
	case *ast.CallExpression:
		return render(n.Callee) + "(" + renderList(n.Arguments) + ")"
	case *ast.ListLiteral:
		return "[" + renderList(n.Elements) + "]"
	case *ast.MapLiteral:
		parts := make([]string, len(n.Pairs))
		for i, p := range n.Pairs {
			parts[i] = render(p.Key) + ": " + render(p.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.Lambda:
		body := n.Body.(*ast.ReturnStatement).Value
		return "(" + strings.Join(ast.Names(n.Params), ", ") + " -> " + render(body) + ")"
	case *ast.DoBlock:
		return "do(" + strings.Join(ast.Names(n.Params), ", ") + ")"
	}
	return "?"
}

func renderList(es []ast.Expression) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = render(e)
	}
	return strings.Join(parts, ", ")
}

func opText(op token.TokenType) string {
	switch op {
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	}
	return string(op)
}

func assignedValue(t *testing.T, program *ast.Program) ast.Expression {
	t.Helper()
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignStatement, got %T", program.Statements[0])
	}
	return stmt.Value
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 1 + 2 * 3", "(1 + (2 * 3))"},
		{"x = a - b - c", "((a - b) - c)"},
		{"x = (a + b) * c", "((a + b) * c)"},
		{"x = a % b / c", "((a % b) / c)"},
		{"x = a < b == c > d", "((a < b) == (c > d))"},
		{"x = a and b or c", "((a and b) or c)"},
		{"x = a or b and c", "(a or (b and c))"},
		{"x = not a and b", "((not a) and b)"},
		{"x = -a * b", "((-a) * b)"},
		{"x = -5 * b", "(-5 * b)"},
		{"x = a - 5", "(a - 5)"},
		{"x = a -5", "(a - 5)"},
		{"x = xs:i + 1", "((xs:i) + 1)"},
		{"x = m:a:b", "((m:a):b)"},
		{"x = xs:(i + 1)", "(xs:(i + 1))"},
		{"x = f(a, b + 1)", "f(a, (b + 1))"},
		{"x = f(a)(b)", "f(a)(b)"},
		{"x = a |> f(1) |> g", "((a |> f(1)) |> g)"},
		{"x = xs -> f |> g", "((xs -> f) |> g)"},
		{"x = a + 1 |> f", "((a + 1) |> f)"},
		{"x = [1, 2 + 3]", "[1, (2 + 3)]"},
		{`x = {"a": xs:0, b: 1}`, `{"a": (xs:0), b: 1}`},
		{"x = (a, b -> a + b)", "(a, b -> (a + b))"},
		{"x = (-> 1)", "( -> 1)"},
		{"x = (v)", "v"},
		{"x = [1, 2] -> (v -> v * 2)", "([1, 2] -> (v -> (v * 2)))"},
		{"x = xs\n  -> f\n  |> g", "((xs -> f) |> g)"},
		{"x = [\n  1,\n  2,\n]", "[1, 2]"},
	}

	for _, tt := range tests {
		got := render(assignedValue(t, parse(t, tt.input)))
		if got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestBinaryEndingALine(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 1 + 2\n", "(1 + 2)"},
		{"x = a * b\ny = 0\n", "(a * b)"},
		{"x = a and\n  b\n", "(a and b)"},
		{"x = 1 +\n\n  2\n", "(1 + 2)"},
	}
	for _, tt := range tests {
		program := parse(t, tt.input)
		stmt, ok := program.Statements[0].(*ast.AssignStatement)
		if !ok {
			t.Fatalf("%q: expected *ast.AssignStatement, got %T", tt.input, program.Statements[0])
		}
		if got := render(stmt.Value); got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}

	program := parse(t, "fn add a, b -> a + b\nprint 7 / 2, 7 % 3\n")
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
}

func TestNegativeLiteral(t *testing.T) {
	lit, ok := assignedValue(t, parse(t, "x = -5")).(*ast.Literal)
	if !ok {
		t.Fatalf("expected literal")
	}
	if lit.Token.Literal != int64(-5) {
		t.Errorf("expected -5, got %#v", lit.Token.Literal)
	}

	flt, ok := assignedValue(t, parse(t, "x = -2.5")).(*ast.Literal)
	if !ok || flt.Token.Literal != -2.5 {
		t.Errorf("expected -2.5 literal, got %#v", flt)
	}

	if _, ok := assignedValue(t, parse(t, "x = - 5")).(*ast.UnaryExpression); !ok {
		t.Errorf("a detached minus should stay a unary expression")
	}
}

func TestCompoundAssignment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x += 2", "(x + 2)"},
		{"x -= y * 2", "(x - (y * 2))"},
		{"x *= 3", "(x * 3)"},
		{"x /= 4", "(x / 4)"},
		{"x %= 5", "(x % 5)"},
	}
	for _, tt := range tests {
		got := render(assignedValue(t, parse(t, tt.input)))
		if got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}

	program := parse(t, "xs:0 += 1")
	stmt, ok := program.Statements[0].(*ast.AssignIndexStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignIndexStatement, got %T", program.Statements[0])
	}
	if got := render(stmt.Value); got != "((xs:0) + 1)" {
		t.Errorf("expected ((xs:0) + 1), got %s", got)
	}
}

func TestIndexAssignment(t *testing.T) {
	program := parse(t, "m:a:b = 3")
	stmt, ok := program.Statements[0].(*ast.AssignIndexStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignIndexStatement, got %T", program.Statements[0])
	}
	if got := render(stmt.Target); got != "(m:a)" {
		t.Errorf("target: expected (m:a), got %s", got)
	}
	if got := render(stmt.Index); got != "b" {
		t.Errorf("index: expected b, got %s", got)
	}
}

func TestCallStatements(t *testing.T) {
	tests := []struct {
		input  string
		callee string
		args   []string
	}{
		{"print", "print", nil},
		{"print 1", "print", []string{"1"}},
		{"print 1, a + 2", "print", []string{"1", "(a + 2)"}},
		{"print(1, 2)", "print", []string{"1", "2"}},
		{"print (1), 2", "print", []string{"1", "2"}},
		{"print 1,\n  2", "print", []string{"1", "2"}},
		{"m:run 5", "(m:run)", []string{"5"}},
		{"f(1)(2)", "f(1)", []string{"2"}},
		{"times 3, do i\n    print i\nend", "times", []string{"3", "do(i)"}},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		stmt, ok := program.Statements[0].(*ast.CallStatement)
		if !ok {
			t.Fatalf("%q: expected *ast.CallStatement, got %T", tt.input, program.Statements[0])
		}
		if got := render(stmt.Callee); got != tt.callee {
			t.Errorf("%q: callee expected %s, got %s", tt.input, tt.callee, got)
		}
		if len(stmt.Arguments) != len(tt.args) {
			t.Fatalf("%q: expected %d arguments, got %d", tt.input, len(tt.args), len(stmt.Arguments))
		}
		for i, a := range tt.args {
			if got := render(stmt.Arguments[i]); got != a {
				t.Errorf("%q: argument %d expected %s, got %s", tt.input, i, a, got)
			}
		}
	}
}

func TestIfStatement(t *testing.T) {
	program := parse(t, "if a print 1 else print 2")
	stmt := program.Statements[0].(*ast.IfStatement)
	if _, ok := stmt.Consequence.(*ast.CallStatement); !ok {
		t.Errorf("consequence: expected call statement, got %T", stmt.Consequence)
	}
	if _, ok := stmt.Alternative.(*ast.CallStatement); !ok {
		t.Errorf("alternative: expected call statement, got %T", stmt.Alternative)
	}

	input := `if a
    x = 1
else if b
    x = 2
else
    x = 3
end`
	program = parse(t, input)
	stmt = program.Statements[0].(*ast.IfStatement)
	cons, ok := stmt.Consequence.(*ast.BlockStatement)
	if !ok || len(cons.Statements) != 1 {
		t.Fatalf("consequence: expected one-statement block, got %T", stmt.Consequence)
	}
	elif, ok := stmt.Alternative.(*ast.IfStatement)
	if !ok {
		t.Fatalf("alternative: expected else-if, got %T", stmt.Alternative)
	}
	if render(elif.Condition) != "b" {
		t.Errorf("else-if condition: expected b, got %s", render(elif.Condition))
	}
	if _, ok := elif.Alternative.(*ast.BlockStatement); !ok {
		t.Errorf("final else: expected block, got %T", elif.Alternative)
	}
}

func TestLoops(t *testing.T) {
	program := parse(t, "while i < 3 i += 1\nfor x, xs\n    print x\n    break\nend")
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	w := program.Statements[0].(*ast.WhileStatement)
	if render(w.Condition) != "(i < 3)" {
		t.Errorf("while condition: got %s", render(w.Condition))
	}
	if _, ok := w.Body.(*ast.AssignStatement); !ok {
		t.Errorf("while body: expected assignment, got %T", w.Body)
	}

	f := program.Statements[1].(*ast.ForStatement)
	if f.Variable.Value != "x" || render(f.Iterable) != "xs" {
		t.Errorf("for header: got %s, %s", f.Variable.Value, render(f.Iterable))
	}
	body := f.Body.(*ast.BlockStatement)
	if _, ok := body.Statements[1].(*ast.BreakStatement); !ok {
		t.Errorf("expected break, got %T", body.Statements[1])
	}
}

func TestFunctionsAndSubroutines(t *testing.T) {
	input := `fn add a, b -> a + b
fn fact n
    if n <= 1 return 1
    return n * fact(n - 1)
end
sub show x -> print x
sub hello
    print "hi"
end`
	program := parse(t, input)
	if len(program.Statements) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(program.Statements))
	}

	add := program.Statements[0].(*ast.FunctionStatement)
	if add.Name.Value != "add" || strings.Join(ast.Names(add.Params), ",") != "a,b" {
		t.Errorf("add header wrong: %s %v", add.Name.Value, ast.Names(add.Params))
	}
	ret, ok := add.Body.(*ast.ReturnStatement)
	if !ok || render(ret.Value) != "(a + b)" {
		t.Errorf("short fn body should be a return of a + b, got %T", add.Body)
	}

	fact := program.Statements[1].(*ast.FunctionStatement)
	if block, ok := fact.Body.(*ast.BlockStatement); !ok || len(block.Statements) != 2 {
		t.Errorf("fact body: expected 2-statement block, got %T", fact.Body)
	}

	show := program.Statements[2].(*ast.SubroutineStatement)
	if _, ok := show.Body.(*ast.CallStatement); !ok {
		t.Errorf("short sub body: expected call statement, got %T", show.Body)
	}

	hello := program.Statements[3].(*ast.SubroutineStatement)
	if len(hello.Params) != 0 {
		t.Errorf("hello: expected no params, got %d", len(hello.Params))
	}
}

func TestSwitchAndSelect(t *testing.T) {
	input := `switch x
case 1 print "one"
case 2
    print "two"
else
    print "other"
end
select
case x > 1 print "big"
else print "small"
end`
	program := parse(t, input)
	sw := program.Statements[0].(*ast.SwitchStatement)
	if len(sw.Cases) != 2 || sw.Default == nil {
		t.Fatalf("switch: expected 2 cases and else, got %d cases", len(sw.Cases))
	}
	if _, ok := sw.Cases[1].Body.(*ast.BlockStatement); !ok {
		t.Errorf("second case: expected block, got %T", sw.Cases[1].Body)
	}

	sel := program.Statements[1].(*ast.SelectStatement)
	if len(sel.Cases) != 1 || render(sel.Cases[0].Match) != "(x > 1)" {
		t.Errorf("select case wrong")
	}
	if _, ok := sel.Default.(*ast.CallStatement); !ok {
		t.Errorf("select else: expected call statement, got %T", sel.Default)
	}
}

func TestReturnForms(t *testing.T) {
	program := parse(t, "sub s\n    return\nend\nfn f -> 1")
	sub := program.Statements[0].(*ast.SubroutineStatement)
	ret := sub.Body.(*ast.BlockStatement).Statements[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Errorf("bare return should have no value")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input      string
		code       diagnostics.ErrorCode
		incomplete bool
	}{
		{"x = 1 2", diagnostics.ErrP002, false},
		{"1 = x", diagnostics.ErrP001, false},
		{"f(1) = 2", diagnostics.ErrP003, false},
		{"x = )", diagnostics.ErrP001, false},
		{"m = {a 1}", diagnostics.ErrP002, false},
		{"x = ", diagnostics.ErrP001, true},
		{"x = [1, 2", diagnostics.ErrP002, true},
		{"x = (1 + 2", diagnostics.ErrP002, true},
		{"fn f\n    return 1\n", diagnostics.ErrP002, true},
		{"if a\n    x = 1\nelse\n", diagnostics.ErrP002, true},
		{"x = \"open", diagnostics.ErrL002, true},
	}

	for _, tt := range tests {
		ctx := run(tt.input)
		if len(ctx.Errors) != 1 {
			t.Errorf("%q: expected exactly 1 error, got %d", tt.input, len(ctx.Errors))
			continue
		}
		if ctx.Errors[0].Code != tt.code {
			t.Errorf("%q: expected %s, got %s (%s)", tt.input, tt.code, ctx.Errors[0].Code, ctx.Errors[0].Message)
		}
		if IsIncomplete(ctx) != tt.incomplete {
			t.Errorf("%q: IsIncomplete = %v, want %v", tt.input, !tt.incomplete, tt.incomplete)
		}
	}
}

func TestOnlyFirstErrorKept(t *testing.T) {
	ctx := run("x = 1 2\ny = 3 4\nz = )")
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(ctx.Errors))
	}
	if ctx.Errors[0].Token.Line != 1 {
		t.Errorf("expected the error on line 1, got line %d", ctx.Errors[0].Token.Line)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"x = 1 2", "expected newline, got '2'"},
		{"for 1, xs print 1", "expected identifier, got '1'"},
		{"fn f\n", "expected 'end', got end of input"},
		{"x = )", "unexpected token ')'"},
	}
	for _, tt := range tests {
		ctx := run(tt.input)
		if !ctx.HasErrors() {
			t.Fatalf("%q: expected an error", tt.input)
		}
		if ctx.Errors[0].Message != tt.message {
			t.Errorf("%q: expected message %q, got %q", tt.input, tt.message, ctx.Errors[0].Message)
		}
	}
}

func TestDeepNestingFails(t *testing.T) {
	depth := MaxRecursionDepth + 10
	input := "x = " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	ctx := run(input)
	if !ctx.HasErrors() {
		t.Fatalf("expected a nesting error")
	}
	if !strings.Contains(ctx.Errors[0].Message, "too deeply nested") {
		t.Errorf("unexpected message: %s", ctx.Errors[0].Message)
	}
}

func TestProgramFile(t *testing.T) {
	ctx := pipeline.NewPipelineContext("x = 1")
	ctx.FilePath = "main.aur"
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&ParserProcessor{}).Process(ctx)
	if ctx.AstRoot.File != "main.aur" {
		t.Errorf("expected file main.aur, got %q", ctx.AstRoot.File)
	}
}
