package parser

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/token"
)

// parseGroupedOrLambda parses `( expr )`, or a lambda when the parenthesis
// opens with a parameter list followed by '->': `(a, b -> a + b)`, `(-> 1)`.
func (p *Parser) parseGroupedOrLambda() ast.Expression {
	if p.isLambdaAhead() {
		return p.parseLambda()
	}

	saved := p.noIndex
	p.noIndex = false
	defer func() { p.noIndex = saved }()

	p.nextToken()
	p.skipNewlinesCur()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	p.skipNewlines()
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) isLambdaAhead() bool {
	i := 1
	if p.peekN(i).Type == token.ARROW {
		return true
	}
	for {
		if p.peekN(i).Type != token.IDENT {
			return false
		}
		i++
		switch p.peekN(i).Type {
		case token.ARROW:
			return true
		case token.COMMA:
			i++
		default:
			return false
		}
	}
}

func (p *Parser) parseLambda() ast.Expression {
	lambda := &ast.Lambda{Token: p.curToken}

	saved := p.noIndex
	p.noIndex = false
	defer func() { p.noIndex = saved }()

	params, ok := p.parseParams(token.ARROW)
	if !ok {
		return nil
	}
	lambda.Params = params
	p.nextToken() // ->

	p.nextToken()
	p.skipNewlinesCur()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	lambda.Body = &ast.ReturnStatement{Token: body.GetToken(), Value: body}
	p.skipNewlines()
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return lambda
}

// parseParams reads `a, b, c` after curToken, stopping before stop or a
// newline. curToken is left on the last parameter (or where it started when
// the list is empty).
func (p *Parser) parseParams(stop token.TokenType) ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}
	if p.peekTokenIs(stop) || p.peekTokenIs(token.NEWLINE) {
		return params, true
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
		if !p.peekTokenIs(token.COMMA) {
			return params, true
		}
		p.nextToken()
	}
}

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}
	elements, ok := p.parseExpressionList(token.RBRACKET)
	if !ok {
		return nil
	}
	list.Elements = elements
	return list
}

// parseMapLiteral parses `{k: v, ...}`. Entries are separated by commas or
// newlines. Inside a key ':' is the separator, not the index operator.
func (p *Parser) parseMapLiteral() ast.Expression {
	m := &ast.MapLiteral{Token: p.curToken, Pairs: []ast.MapPair{}}

	saved := p.noIndex
	defer func() { p.noIndex = saved }()

	p.skipNewlines()
	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()

		p.noIndex = true
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		p.skipNewlinesCur()

		p.noIndex = false
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		m.Pairs = append(m.Pairs, ast.MapPair{Key: key, Value: value})

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else if !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.RBRACE) {
			p.peekError(token.RBRACE)
			return nil
		}
		p.skipNewlines()
	}
	p.nextToken()
	return m
}

// parseDoBlock parses an anonymous subroutine: `do a, b` NEWLINE ... `end`.
func (p *Parser) parseDoBlock() ast.Expression {
	do := &ast.DoBlock{Token: p.curToken}
	params, ok := p.parseParams(token.NEWLINE)
	if !ok {
		return nil
	}
	do.Params = params
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	body := p.parseBlock(do.Token, token.END)
	if body == nil {
		return nil
	}
	do.Body = body
	return do
}

// skipNewlinesCur advances while curToken is a newline.
func (p *Parser) skipNewlinesCur() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}
