package parser

import (
	"strings"

	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/pipeline"
	"github.com/funvibe/aurora/internal/token"
)

const (
	_ int = iota
	LOWEST
	PIPE        // |> ->
	OR          // or
	AND         // and
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x, not x
	POSTFIX     // f(x), x:i
)

// MaxRecursionDepth bounds expression nesting so hostile input fails with a
// diagnostic instead of exhausting the stack.
const MaxRecursionDepth = 1000

var precedences = map[token.TokenType]int{
	token.PIPE:     PIPE,
	token.ARROW:    PIPE,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GT:       LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   POSTFIX,
	token.COLON:    POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	// noIndex is set while parsing a map key, where ':' separates the key
	// from its value. Brackets, parentheses and call arguments clear it.
	noIndex bool
	depth   int
	failed  bool
}

// New creates a parser over a token stream that ends with EOF. Errors are
// appended to ctx.
func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseVariable,
		token.INT:      p.parseLiteral,
		token.FLOAT:    p.parseLiteral,
		token.STRING:   p.parseLiteral,
		token.TRUE:     p.parseLiteral,
		token.FALSE:    p.parseLiteral,
		token.MINUS:    p.parsePrefixExpression,
		token.NOT:      p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedOrLambda,
		token.LBRACKET: p.parseListLiteral,
		token.LBRACE:   p.parseMapLiteral,
		token.DO:       p.parseDoBlock,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.LPAREN: p.parseCallExpression,
		token.COLON:  p.parseIndexExpression,
	}
	for _, tt := range []token.TokenType{
		token.PIPE, token.ARROW, token.OR, token.AND,
		token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE,
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
	} {
		p.infixParseFns[tt] = p.parseInfixExpression
	}

	// Read two tokens, so curToken and peekToken are both set
	p.curToken = p.tokens[0]
	p.peekToken = p.at(1)
	return p
}

func (p *Parser) at(i int) token.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
	p.peekToken = p.at(p.pos + 1)
}

// peekN returns the token n positions after curToken.
func (p *Parser) peekN(n int) token.Token {
	return p.at(p.pos + n)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

// adjacent reports whether b starts exactly where a ends on the same line.
func adjacent(a, b token.Token) bool {
	return a.Line == b.Line && b.Column == a.End()
}

func (p *Parser) peekPrecedence() int {
	switch p.peekToken.Type {
	case token.LPAREN:
		// f(x) is a call only when '(' touches the callee
		if !adjacent(p.curToken, p.peekToken) {
			return LOWEST
		}
	case token.COLON:
		if p.noIndex {
			return LOWEST
		}
	}
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "newline"
	}
	return "'" + tok.Lexeme + "'"
}

func describeType(t token.TokenType) string {
	switch t {
	case token.NEWLINE:
		return "newline"
	case token.IDENT:
		return "identifier"
	case token.EOF:
		return "end of input"
	}
	if kw := strings.ToLower(string(t)); token.LookupIdent(kw) == t {
		return "'" + kw + "'"
	}
	return "'" + string(t) + "'"
}

// addError records a parse error. Only the first error of a parse is kept:
// later ones are almost always knock-on effects.
func (p *Parser) addError(err *diagnostics.DiagnosticError) {
	if p.failed {
		return
	}
	p.failed = true
	p.ctx.AddError(err)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.NewError(diagnostics.ErrP002, p.peekToken, describeType(t), describe(p.peekToken)))
}

// expectedAt reports that curToken should have been t.
func (p *Parser) expectedAt(t token.TokenType) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrP002, p.curToken, describeType(t), describe(p.curToken))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.NewError(diagnostics.ErrP001, tok, describe(tok)))
}

// ParseProgram parses the whole token stream. On error the program holds the
// statements parsed before the failure and ctx carries the diagnostic.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Token: p.curToken, Statements: []ast.Statement{}}

	for !p.failed {
		for p.curTokenIs(token.NEWLINE) {
			p.nextToken()
		}
		if p.curTokenIs(token.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt == nil || p.failed {
			break
		}
		program.Statements = append(program.Statements, stmt)
		if !p.expectStatementEnd() {
			break
		}
	}
	return program
}

// expectStatementEnd moves past the newline that terminates a statement.
func (p *Parser) expectStatementEnd() bool {
	switch p.peekToken.Type {
	case token.NEWLINE, token.EOF:
		p.nextToken()
		return true
	}
	p.peekError(token.NEWLINE)
	return false
}

// parseBlock parses statements up to one of the terminators. It expects
// curToken to be the newline ending the block header and leaves curToken on
// the terminator.
func (p *Parser) parseBlock(open token.Token, terminators ...token.TokenType) *ast.BlockStatement {
	stmts := []ast.Statement{}
	p.nextToken()
	for {
		for p.curTokenIs(token.NEWLINE) {
			p.nextToken()
		}
		for _, t := range terminators {
			if p.curTokenIs(t) {
				return ast.NewBlock(open, stmts)
			}
		}
		if p.curTokenIs(token.EOF) {
			p.addError(p.expectedAt(terminators[len(terminators)-1]))
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil || p.failed {
			return nil
		}
		stmts = append(stmts, stmt)
		if !p.expectStatementEnd() {
			return nil
		}
	}
}

// parseBody parses either a one-line statement or, when the header is
// followed by a newline, a block closed by one of the terminators.
func (p *Parser) parseBody(terminators ...token.TokenType) (ast.Statement, bool) {
	if p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
		open := p.curToken
		block := p.parseBlock(open, terminators...)
		if block == nil {
			return nil, true
		}
		return block, true
	}
	p.nextToken()
	return p.parseStatement(), false
}
