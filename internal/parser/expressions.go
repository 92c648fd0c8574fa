package parser

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken, "(expression too deeply nested)"))
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil || p.failed {
		return nil
	}

	for {
		if p.peekTokenIs(token.NEWLINE) {
			// a line starting with |> or -> continues the expression
			if !p.hasContinuationOperator() {
				break
			}
			for p.peekTokenIs(token.NEWLINE) {
				p.nextToken()
			}
		}

		if precedence >= p.peekPrecedence() {
			break
		}

		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		nextExp := infix(leftExp)
		if nextExp == nil || p.failed {
			return nil
		}
		leftExp = nextExp
	}

	return leftExp
}

func (p *Parser) hasContinuationOperator() bool {
	for i := 1; ; i++ {
		tok := p.peekN(i)
		if tok.Type == token.NEWLINE {
			continue
		}
		return tok.Type == token.PIPE || tok.Type == token.ARROW
	}
}

func (p *Parser) parseVariable() ast.Expression {
	return &ast.Variable{Token: p.curToken, Name: p.curToken.Lexeme}
}

func (p *Parser) parseLiteral() ast.Expression {
	return &ast.Literal{Token: p.curToken}
}

// parsePrefixExpression parses `-x` and `not x`. A minus sign touching a
// number literal is folded into a negative literal.
func (p *Parser) parsePrefixExpression() ast.Expression {
	opTok := p.curToken
	if opTok.Type == token.MINUS && adjacent(opTok, p.peekToken) {
		switch p.peekToken.Type {
		case token.INT:
			p.nextToken()
			return &ast.Literal{Token: negated(opTok, p.curToken, -p.curToken.Literal.(int64))}
		case token.FLOAT:
			p.nextToken()
			return &ast.Literal{Token: negated(opTok, p.curToken, -p.curToken.Literal.(float64))}
		}
	}

	expression := &ast.UnaryExpression{Token: opTok, Operator: opTok.Type}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func negated(minus, num token.Token, value interface{}) token.Token {
	return token.Token{
		Type:    num.Type,
		Lexeme:  "-" + num.Lexeme,
		Literal: value,
		Line:    minus.Line,
		Column:  minus.Column,
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Type,
		Left:     left,
	}

	precedence := p.curPrecedence()
	// a line may break after the operator
	p.skipNewlines()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseIndexExpression parses `target:index`. The index binds tighter than
// any operator, so `xs:i + 1` is `(xs:i) + 1` and `m:a:b` nests leftwards.
func (p *Parser) parseIndexExpression(target ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Target: target}
	p.nextToken()
	exp.Index = p.parseExpression(POSTFIX)
	if exp.Index == nil {
		return nil
	}
	return exp
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Callee: callee}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	exp.Arguments = args
	return exp
}

// parseExpressionList parses comma separated expressions up to end. It
// expects curToken to be the opening delimiter and leaves curToken on end.
// Newlines are allowed between elements.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	saved := p.noIndex
	p.noIndex = false
	defer func() { p.noIndex = saved }()

	list := []ast.Expression{}
	p.skipNewlines()
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	for {
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
		p.skipNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipNewlines()
		// trailing comma
		if p.peekTokenIs(end) {
			break
		}
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

// skipNewlines advances while the next token is a newline.
func (p *Parser) skipNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}
