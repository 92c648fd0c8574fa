package ast

import "github.com/funvibe/aurora/internal/token"

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes. The node set is closed:
// only types declared in this package implement it.
type Node interface {
	TokenProvider
	TokenLiteral() string
	node()
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Token      token.Token
	Statements []Statement
}

func (p *Program) node()                 {}
func (p *Program) GetToken() token.Token { return p.Token }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Identifier is a bare name: a variable reference target, a parameter or a
// declared function name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) String() string { return i.Value }

// Names extracts the identifier strings of params.
func Names(params []*Identifier) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Value
	}
	return out
}
