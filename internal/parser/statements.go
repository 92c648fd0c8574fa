package parser

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

// parseStatement parses one statement starting at curToken and leaves
// curToken on its last token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.IF:
		return nilIfFailed(p, p.parseIfStatement())
	case token.WHILE:
		return nilIfFailed(p, p.parseWhileStatement())
	case token.FOR:
		return nilIfFailed(p, p.parseForStatement())
	case token.FN:
		return nilIfFailed(p, p.parseFunctionStatement())
	case token.SUB:
		return nilIfFailed(p, p.parseSubroutineStatement())
	case token.SWITCH:
		return nilIfFailed(p, p.parseSwitchStatement())
	case token.SELECT:
		return nilIfFailed(p, p.parseSelectStatement())
	case token.RETURN:
		return nilIfFailed(p, p.parseReturnStatement())
	case token.BREAK:
		return &ast.BreakStatement{Token: p.curToken}
	case token.CONTINUE:
		return &ast.ContinueStatement{Token: p.curToken}
	case token.IDENT:
		return p.parseIdentStatement()
	default:
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
}

// nilIfFailed turns a typed nil statement into an untyped nil interface.
func nilIfFailed[T ast.Statement](p *Parser, stmt T) ast.Statement {
	if p.failed {
		return nil
	}
	return stmt
}

// atStatementEnd reports whether the statement ending at curToken is
// complete: a newline, end of input, or the 'else' of a one-line if.
func (p *Parser) atStatementEnd() bool {
	switch p.peekToken.Type {
	case token.NEWLINE, token.EOF, token.ELSE:
		return true
	}
	return false
}

// parseIdentStatement handles the statements that open with a name:
//
//	x = e            assignment (and the compound forms += -= *= /= %=)
//	xs:i:j = e       index assignment
//	f a, b           call statement
//	f(a, b)          call statement with a touching parenthesis
func (p *Parser) parseIdentStatement() ast.Statement {
	first := p.curToken
	target := p.parseTarget()
	if target == nil {
		return nil
	}

	if p.peekTokenIs(token.ASSIGN) || token.IsCompoundAssign(p.peekToken.Type) {
		p.nextToken()
		return p.parseAssignment(first, target)
	}

	if call, ok := target.(*ast.CallExpression); ok && p.atStatementEnd() {
		return &ast.CallStatement{Token: first, Callee: call.Callee, Arguments: call.Arguments}
	}

	stmt := &ast.CallStatement{Token: first, Callee: target, Arguments: []ast.Expression{}}
	if p.atStatementEnd() {
		return stmt
	}
	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		stmt.Arguments = append(stmt.Arguments, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipNewlines()
	}
	return stmt
}

// parseTarget parses the name at curToken plus any touching calls and
// index suffixes, without consuming binary operators.
func (p *Parser) parseTarget() ast.Expression {
	var target ast.Expression = &ast.Variable{Token: p.curToken, Name: p.curToken.Lexeme}
	for {
		switch {
		case p.peekTokenIs(token.COLON):
			p.nextToken()
			target = p.parseIndexExpression(target)
		case p.peekTokenIs(token.LPAREN) && adjacent(p.curToken, p.peekToken):
			p.nextToken()
			target = p.parseCallExpression(target)
		default:
			return target
		}
		if target == nil {
			return nil
		}
	}
}

// parseAssignment builds Assign or AssignIndex. curToken is the assignment
// operator. Compound operators desugar to a binary expression on the target.
func (p *Parser) parseAssignment(first token.Token, target ast.Expression) ast.Statement {
	opTok := p.curToken
	p.nextToken()
	p.skipNewlinesCur()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	if token.IsCompoundAssign(opTok.Type) {
		op := token.CompoundOperator(opTok.Type)
		value = &ast.BinaryExpression{
			Token:    token.Token{Type: op, Lexeme: string(op), Line: opTok.Line, Column: opTok.Column},
			Left:     target,
			Operator: op,
			Right:    value,
		}
	}

	switch t := target.(type) {
	case *ast.Variable:
		return &ast.AssignStatement{
			Token: first,
			Name:  &ast.Identifier{Token: t.Token, Value: t.Name},
			Value: value,
		}
	case *ast.IndexExpression:
		return &ast.AssignIndexStatement{Token: first, Target: t.Target, Index: t.Index, Value: value}
	default:
		p.addError(diagnostics.NewError(diagnostics.ErrP003, opTok))
		return nil
	}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if !p.atStatementEnd() && !p.peekTokenIs(token.END) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}

	return stmt
}

func (p *Parser) parseFunctionStatement() *ast.FunctionStatement {
	stmt := &ast.FunctionStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	params, ok := p.parseParams(token.ARROW)
	if !ok {
		return nil
	}
	stmt.Params = params

	if p.peekTokenIs(token.ARROW) {
		// fn name a, b -> expr
		p.nextToken()
		p.nextToken()
		body := p.parseExpression(LOWEST)
		if body == nil {
			return nil
		}
		stmt.Body = &ast.ReturnStatement{Token: body.GetToken(), Value: body}
		return stmt
	}

	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	body := p.parseBlock(stmt.Token, token.END)
	if body == nil {
		return nil
	}
	stmt.Body = body
	return stmt
}

func (p *Parser) parseSubroutineStatement() *ast.SubroutineStatement {
	stmt := &ast.SubroutineStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	params, ok := p.parseParams(token.ARROW)
	if !ok {
		return nil
	}
	stmt.Params = params

	if p.peekTokenIs(token.ARROW) {
		// sub name a, b -> statement
		p.nextToken()
		p.nextToken()
		body := p.parseStatement()
		if body == nil {
			return nil
		}
		stmt.Body = body
		return stmt
	}

	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	body := p.parseBlock(stmt.Token, token.END)
	if body == nil {
		return nil
	}
	stmt.Body = body
	return stmt
}
