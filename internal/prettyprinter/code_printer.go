package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). Mirrors the parser.
var operatorPrecedence = map[token.TokenType]int{
	token.PIPE:     1,
	token.ARROW:    1,
	token.OR:       2,
	token.AND:      3,
	token.EQ:       4,
	token.NOT_EQ:   4,
	token.LT:       5,
	token.LTE:      5,
	token.GT:       5,
	token.GTE:      5,
	token.PLUS:     6,
	token.MINUS:    6,
	token.ASTERISK: 7,
	token.SLASH:    7,
	token.PERCENT:  7,
}

const (
	prefixPrecedence  = 8
	postfixPrecedence = 9
)

var operatorText = map[token.TokenType]string{
	token.OR:  "or",
	token.AND: "and",
	token.NOT: "not",
}

func getPrecedence(op token.TokenType) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

func opString(op token.TokenType) string {
	if s, ok := operatorText[op]; ok {
		return s
	}
	return string(op)
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a program in canonical form: one statement per line, blocks
// indented by four spaces, parentheses only where precedence needs them.
func Print(program *ast.Program) string {
	p := NewCodePrinter()
	p.PrintProgram(program)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) PrintProgram(program *ast.Program) {
	for _, stmt := range program.Statements {
		p.writeIndent()
		p.printStmt(stmt)
		p.writeln()
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		prec := getPrecedence(e.Operator)
		// all binary operators are left-associative
		needParens := prec < parentPrec || (prec == parentPrec && isRight)
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + opString(e.Operator) + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.UnaryExpression:
		needParens := prefixPrecedence < parentPrec
		if needParens {
			p.write("(")
		}
		if e.Operator == token.NOT {
			p.write("not ")
		} else {
			p.write(opString(e.Operator))
		}
		p.printExpr(e.Right, prefixPrecedence, false)
		if needParens {
			p.write(")")
		}
	case *ast.Literal:
		if e.Token.Type == token.STRING {
			p.write(quote(e.Token.Literal.(string)))
		} else {
			p.write(e.Token.Lexeme)
		}
	case *ast.Variable:
		p.write(e.Name)
	case *ast.ListLiteral:
		p.write("[")
		p.printExprList(e.Elements)
		p.write("]")
	case *ast.MapLiteral:
		p.write("{")
		for i, pair := range e.Pairs {
			if i > 0 {
				p.write(", ")
			}
			// ':' inside a bare key would read as the key separator
			switch pair.Key.(type) {
			case *ast.Literal, *ast.Variable:
				p.printExpr(pair.Key, 0, false)
			default:
				p.write("(")
				p.printExpr(pair.Key, 0, false)
				p.write(")")
			}
			p.write(": ")
			p.printExpr(pair.Value, 0, false)
		}
		p.write("}")
	case *ast.IndexExpression:
		p.printExpr(e.Target, postfixPrecedence, false)
		p.write(":")
		p.printExpr(e.Index, postfixPrecedence, true)
	case *ast.CallExpression:
		p.printExpr(e.Callee, postfixPrecedence, false)
		p.write("(")
		p.printExprList(e.Arguments)
		p.write(")")
	case *ast.Lambda:
		p.write("(")
		p.write(strings.Join(ast.Names(e.Params), ", "))
		if len(e.Params) > 0 {
			p.write(" ")
		}
		p.write("-> ")
		if ret, ok := e.Body.(*ast.ReturnStatement); ok {
			p.printExpr(ret.Value, 0, false)
		} else {
			p.write("<???>")
		}
		p.write(")")
	case *ast.DoBlock:
		p.write("do")
		if len(e.Params) > 0 {
			p.write(" " + strings.Join(ast.Names(e.Params), ", "))
		}
		p.printBlockBody(e.Body)
		p.writeIndent()
		p.write("end")
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printExprList(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e, 0, false)
	}
}

// printBlockBody writes a newline, the indented statements of body and
// leaves the cursor at the start of the closing line.
func (p *CodePrinter) printBlockBody(body ast.Statement) {
	p.writeln()
	p.indent++
	if block, ok := body.(*ast.BlockStatement); ok {
		for _, stmt := range block.Statements {
			p.writeIndent()
			p.printStmt(stmt)
			p.writeln()
		}
	} else if body != nil {
		p.writeIndent()
		p.printStmt(body)
		p.writeln()
	}
	p.indent--
}

func isBlock(s ast.Statement) bool {
	_, ok := s.(*ast.BlockStatement)
	return ok
}

func (p *CodePrinter) printStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		p.write(s.Name.Value + " = ")
		p.printExpr(s.Value, 0, false)
	case *ast.AssignIndexStatement:
		p.printExpr(s.Target, postfixPrecedence, false)
		p.write(":")
		p.printExpr(s.Index, postfixPrecedence, true)
		p.write(" = ")
		p.printExpr(s.Value, 0, false)
	case *ast.CallStatement:
		p.printExpr(s.Callee, postfixPrecedence, false)
		if len(s.Arguments) > 0 {
			p.write(" ")
			p.printExprList(s.Arguments)
		}
	case *ast.ReturnStatement:
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.printExpr(s.Value, 0, false)
		}
	case *ast.BreakStatement:
		p.write("break")
	case *ast.ContinueStatement:
		p.write("continue")
	case *ast.IfStatement:
		p.printIf(s)
	case *ast.WhileStatement:
		p.write("while ")
		p.printExpr(s.Condition, 0, false)
		p.printBody(s.Body)
	case *ast.ForStatement:
		p.write("for " + s.Variable.Value + ", ")
		p.printExpr(s.Iterable, 0, false)
		p.printBody(s.Body)
	case *ast.FunctionStatement:
		p.write("fn " + s.Name.Value)
		p.printParams(s.Params)
		if ret, ok := s.Body.(*ast.ReturnStatement); ok && ret.Value != nil {
			p.write(" -> ")
			p.printExpr(ret.Value, 0, false)
			return
		}
		p.printBlockBody(s.Body)
		p.writeIndent()
		p.write("end")
	case *ast.SubroutineStatement:
		p.write("sub " + s.Name.Value)
		p.printParams(s.Params)
		if !isBlock(s.Body) {
			p.write(" -> ")
			p.printStmt(s.Body)
			return
		}
		p.printBlockBody(s.Body)
		p.writeIndent()
		p.write("end")
	case *ast.SwitchStatement:
		p.write("switch ")
		p.printExpr(s.Value, 0, false)
		p.printCases(s.Cases, s.Default)
	case *ast.SelectStatement:
		p.write("select")
		p.printCases(s.Cases, s.Default)
	case *ast.BlockStatement:
		// a bare block only appears as a body; print it inline
		for i, inner := range s.Statements {
			if i > 0 {
				p.writeln()
				p.writeIndent()
			}
			p.printStmt(inner)
		}
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printParams(params []*ast.Identifier) {
	if len(params) > 0 {
		p.write(" " + strings.Join(ast.Names(params), ", "))
	}
}

// printBody prints a loop body as a one-liner or an `end`-closed block.
func (p *CodePrinter) printBody(body ast.Statement) {
	if !isBlock(body) {
		p.write(" ")
		p.printStmt(body)
		return
	}
	p.printBlockBody(body)
	p.writeIndent()
	p.write("end")
}

func (p *CodePrinter) printIf(s *ast.IfStatement) {
	p.write("if ")
	p.printExpr(s.Condition, 0, false)

	if !isBlock(s.Consequence) {
		p.write(" ")
		p.printStmt(s.Consequence)
		if s.Alternative == nil {
			return
		}
		p.write(" else")
		p.printBody(s.Alternative)
		return
	}

	p.printBlockBody(s.Consequence)
	switch alt := s.Alternative.(type) {
	case nil:
		p.writeIndent()
		p.write("end")
	case *ast.BlockStatement:
		p.writeIndent()
		p.write("else")
		p.printBlockBody(alt)
		p.writeIndent()
		p.write("end")
	case *ast.IfStatement:
		if isBlock(alt.Consequence) {
			// else-if chains share the final end
			p.writeIndent()
			p.write("else ")
			p.printIf(alt)
			return
		}
		p.writeIndent()
		p.write("else ")
		p.printStmt(alt)
		p.writeln()
		p.writeIndent()
		p.write("end")
	default:
		p.writeIndent()
		p.write("else ")
		p.printStmt(alt)
		p.writeln()
		p.writeIndent()
		p.write("end")
	}
}

func (p *CodePrinter) printCases(cases []*ast.CaseClause, def ast.Statement) {
	p.writeln()
	for _, c := range cases {
		p.writeIndent()
		p.write("case ")
		p.printExpr(c.Match, 0, false)
		p.printArm(c.Body)
	}
	if def != nil {
		p.writeIndent()
		p.write("else")
		p.printArm(def)
	}
	p.writeIndent()
	p.write("end")
}

func (p *CodePrinter) printArm(body ast.Statement) {
	if isBlock(body) {
		p.printBlockBody(body)
		return
	}
	p.write(" ")
	p.printStmt(body)
	p.writeln()
}

// quote renders s with the escapes the lexer understands.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
