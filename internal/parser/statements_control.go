package parser

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/token"
)

// parseIfStatement parses both forms:
//
//	if c stmt [else stmt]
//	if c NEWLINE block [else (NEWLINE block | if ... | stmt)] end
//
// `else if` chains share the closing `end` of the last branch.
func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	cons, isBlock := p.parseBody(token.ELSE, token.END)
	if cons == nil {
		return nil
	}
	stmt.Consequence = cons

	if !isBlock {
		if !p.peekTokenIs(token.ELSE) {
			return stmt
		}
		p.nextToken()
		alt, _ := p.parseBody(token.END)
		if alt == nil {
			return nil
		}
		stmt.Alternative = alt
		return stmt
	}

	if p.curTokenIs(token.END) {
		return stmt
	}

	// curToken is 'else'
	switch {
	case p.peekTokenIs(token.IF):
		p.nextToken()
		alt := p.parseIfStatement()
		if alt == nil {
			return nil
		}
		stmt.Alternative = alt
		return stmt
	case p.peekTokenIs(token.NEWLINE):
		p.nextToken()
		alt := p.parseBlock(p.curToken, token.END)
		if alt == nil {
			return nil
		}
		stmt.Alternative = alt
		return stmt
	}

	p.nextToken()
	alt := p.parseStatement()
	if alt == nil {
		return nil
	}
	stmt.Alternative = alt
	if !p.expectStatementEnd() {
		return nil
	}
	p.skipNewlinesCur()
	if !p.curTokenIs(token.END) {
		p.addError(p.expectedAt(token.END))
		return nil
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	body, _ := p.parseBody(token.END)
	if body == nil {
		return nil
	}
	stmt.Body = body
	return stmt
}

// parseForStatement parses `for x, iterable` followed by a body.
func (p *Parser) parseForStatement() *ast.ForStatement {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Variable = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	p.nextToken()
	stmt.Iterable = p.parseExpression(LOWEST)
	if stmt.Iterable == nil {
		return nil
	}
	body, _ := p.parseBody(token.END)
	if body == nil {
		return nil
	}
	stmt.Body = body
	return stmt
}

// parseSwitchStatement parses:
//
//	switch value
//	case a
//	    ...
//	case b stmt
//	else
//	    ...
//	end
func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	stmt := &ast.SwitchStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	cases, def, ok := p.parseCases()
	if !ok {
		return nil
	}
	stmt.Cases = cases
	stmt.Default = def
	return stmt
}

// parseSelectStatement parses a `select` whose cases are conditions.
func (p *Parser) parseSelectStatement() *ast.SelectStatement {
	stmt := &ast.SelectStatement{Token: p.curToken}
	cases, def, ok := p.parseCases()
	if !ok {
		return nil
	}
	stmt.Cases = cases
	stmt.Default = def
	return stmt
}

// parseCases parses the case arms and optional else of a switch or select,
// leaving curToken on the closing 'end'.
func (p *Parser) parseCases() ([]*ast.CaseClause, ast.Statement, bool) {
	var cases []*ast.CaseClause
	var def ast.Statement

	if !p.expectPeek(token.NEWLINE) {
		return nil, nil, false
	}
	p.skipNewlinesCur()

	for p.curTokenIs(token.CASE) {
		clause := &ast.CaseClause{Token: p.curToken}
		p.nextToken()
		clause.Match = p.parseExpression(LOWEST)
		if clause.Match == nil {
			return nil, nil, false
		}
		body, ok := p.parseArm()
		if !ok {
			return nil, nil, false
		}
		clause.Body = body
		cases = append(cases, clause)
	}

	if p.curTokenIs(token.ELSE) {
		body, ok := p.parseArm()
		if !ok {
			return nil, nil, false
		}
		def = body
	}

	if !p.curTokenIs(token.END) {
		p.addError(p.expectedAt(token.END))
		return nil, nil, false
	}
	return cases, def, true
}

// parseArm parses the body of one case or else arm and moves curToken to
// the next 'case', 'else' or 'end'.
func (p *Parser) parseArm() (ast.Statement, bool) {
	body, isBlock := p.parseBody(token.CASE, token.ELSE, token.END)
	if body == nil {
		return nil, false
	}
	if !isBlock {
		if !p.expectStatementEnd() {
			return nil, false
		}
		p.skipNewlinesCur()
	}
	return body, true
}
