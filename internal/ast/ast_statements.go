package ast

import "github.com/funvibe/aurora/internal/token"

// IfStatement: `if cond ... [else ...] end`. Else may be nil.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence Statement
	Alternative Statement
}

func (is *IfStatement) node()                 {}
func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) node()                 {}
func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForStatement: `for name, iterable ... end`.
type ForStatement struct {
	Token    token.Token
	Variable *Identifier
	Iterable Expression
	Body     Statement
}

func (fs *ForStatement) node()                 {}
func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// AssignStatement: `name = value`. Compound forms arrive desugared.
type AssignStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) node()                 {}
func (as *AssignStatement) statementNode()        {}
func (as *AssignStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token { return as.Token }

// AssignIndexStatement: `target:index = value`.
type AssignIndexStatement struct {
	Token  token.Token
	Target Expression
	Index  Expression
	Value  Expression
}

func (ai *AssignIndexStatement) node()                 {}
func (ai *AssignIndexStatement) statementNode()        {}
func (ai *AssignIndexStatement) TokenLiteral() string  { return ai.Token.Lexeme }
func (ai *AssignIndexStatement) GetToken() token.Token { return ai.Token }

// FunctionStatement: `fn name params ... end`, a named value-producing
// callable bound in the global frame.
type FunctionStatement struct {
	Token  token.Token
	Name   *Identifier
	Params []*Identifier
	Body   Statement
}

func (fs *FunctionStatement) node()                 {}
func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// SubroutineStatement: `sub name params ... end`.
type SubroutineStatement struct {
	Token  token.Token
	Name   *Identifier
	Params []*Identifier
	Body   Statement
}

func (ss *SubroutineStatement) node()                 {}
func (ss *SubroutineStatement) statementNode()        {}
func (ss *SubroutineStatement) TokenLiteral() string  { return ss.Token.Lexeme }
func (ss *SubroutineStatement) GetToken() token.Token { return ss.Token }

// ReturnStatement: `return [value]`. Value is nil for a bare return.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (rs *ReturnStatement) node()                 {}
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) node()                 {}
func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) node()                 {}
func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

// CallStatement is a call whose result, if any, is discarded. Subroutines
// may only be called this way.
type CallStatement struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (cs *CallStatement) node()                 {}
func (cs *CallStatement) statementNode()        {}
func (cs *CallStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *CallStatement) GetToken() token.Token { return cs.Token }

// BlockStatement is a sequence of statements. Its token is the first
// statement's token, or the opening token of an empty body.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (bs *BlockStatement) node()                 {}
func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// NewBlock builds a block positioned at its first statement.
func NewBlock(open token.Token, stmts []Statement) *BlockStatement {
	tok := open
	if len(stmts) > 0 {
		tok = stmts[0].GetToken()
	}
	return &BlockStatement{Token: tok, Statements: stmts}
}

// CaseClause is one `case expr` arm of a switch or select.
type CaseClause struct {
	Token token.Token
	Match Expression
	Body  Statement
}

// SwitchStatement compares Value against each case by equality.
type SwitchStatement struct {
	Token   token.Token
	Value   Expression
	Cases   []*CaseClause
	Default Statement
}

func (ss *SwitchStatement) node()                 {}
func (ss *SwitchStatement) statementNode()        {}
func (ss *SwitchStatement) TokenLiteral() string  { return ss.Token.Lexeme }
func (ss *SwitchStatement) GetToken() token.Token { return ss.Token }

// SelectStatement runs the first case whose condition is true.
type SelectStatement struct {
	Token   token.Token
	Cases   []*CaseClause
	Default Statement
}

func (ss *SelectStatement) node()                 {}
func (ss *SelectStatement) statementNode()        {}
func (ss *SelectStatement) TokenLiteral() string  { return ss.Token.Lexeme }
func (ss *SelectStatement) GetToken() token.Token { return ss.Token }
