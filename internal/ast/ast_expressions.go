package ast

import "github.com/funvibe/aurora/internal/token"

// BinaryExpression is `left op right`, including the pipe (|>) and map (->)
// operators.
type BinaryExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (be *BinaryExpression) node()                 {}
func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// UnaryExpression is `-x` or `not x`.
type UnaryExpression struct {
	Token    token.Token // The operator token
	Operator token.TokenType
	Right    Expression
}

func (ue *UnaryExpression) node()                 {}
func (ue *UnaryExpression) expressionNode()       {}
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Token.Lexeme }
func (ue *UnaryExpression) GetToken() token.Token { return ue.Token }

// Literal is a number, string or boolean constant. Token.Literal holds the
// decoded int64, float64, string or bool.
type Literal struct {
	Token token.Token
}

func (l *Literal) node()                 {}
func (l *Literal) expressionNode()       {}
func (l *Literal) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Literal) GetToken() token.Token { return l.Token }

// Variable is a reference to a named binding.
type Variable struct {
	Token token.Token
	Name  string
}

func (v *Variable) node()                 {}
func (v *Variable) expressionNode()       {}
func (v *Variable) TokenLiteral() string  { return v.Token.Lexeme }
func (v *Variable) GetToken() token.Token { return v.Token }

// ListLiteral is `[a, b, c]`.
type ListLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (ll *ListLiteral) node()                 {}
func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// MapPair is one `key: value` entry of a map literal.
type MapPair struct {
	Key   Expression
	Value Expression
}

// MapLiteral is `{k: v, ...}`.
type MapLiteral struct {
	Token token.Token // The '{' token
	Pairs []MapPair
}

func (ml *MapLiteral) node()                 {}
func (ml *MapLiteral) expressionNode()       {}
func (ml *MapLiteral) TokenLiteral() string  { return ml.Token.Lexeme }
func (ml *MapLiteral) GetToken() token.Token { return ml.Token }

// IndexExpression is `target:index`.
type IndexExpression struct {
	Token  token.Token // The ':' token
	Target Expression
	Index  Expression
}

func (ie *IndexExpression) node()                 {}
func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// CallExpression is `callee(args...)` in value position.
type CallExpression struct {
	Token     token.Token // The '(' token
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) node()                 {}
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// Lambda is `(a, b -> expr)`. Body is a ReturnStatement of the expression.
type Lambda struct {
	Token  token.Token // The '(' token
	Params []*Identifier
	Body   Statement
}

func (l *Lambda) node()                 {}
func (l *Lambda) expressionNode()       {}
func (l *Lambda) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Lambda) GetToken() token.Token { return l.Token }

// DoBlock is an anonymous subroutine: `do a, b` NEWLINE ... `end`.
type DoBlock struct {
	Token  token.Token // The 'do' token
	Params []*Identifier
	Body   Statement
}

func (db *DoBlock) node()                 {}
func (db *DoBlock) expressionNode()       {}
func (db *DoBlock) TokenLiteral() string  { return db.Token.Lexeme }
func (db *DoBlock) GetToken() token.Token { return db.Token }
