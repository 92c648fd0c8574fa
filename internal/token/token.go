package token

import "fmt"

type TokenType string

// Token is a lexical unit. Literal holds the decoded value for number,
// string and boolean tokens (int64, float64, string, bool).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// End returns the column just past the last character of the token.
func (t Token) End() int {
	return t.Column + len([]rune(t.Lexeme))
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	// Identifiers + literals
	IDENT  = "IDENT"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"
	TRUE   = "TRUE"
	FALSE  = "FALSE"

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"

	LT     = "<"
	LTE    = "<="
	GT     = ">"
	GTE    = ">="
	EQ     = "=="
	NOT_EQ = "!="

	ASSIGN          = "="
	PLUS_ASSIGN     = "+="
	MINUS_ASSIGN    = "-="
	ASTERISK_ASSIGN = "*="
	SLASH_ASSIGN    = "/="
	PERCENT_ASSIGN  = "%="

	ARROW = "->" // map operator, lambda and short function bodies
	PIPE  = "|>" // apply operator

	// Delimiters
	COMMA    = ","
	COLON    = ":"
	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	IF       = "IF"
	ELSE     = "ELSE"
	WHILE    = "WHILE"
	FOR      = "FOR"
	FN       = "FN"
	SUB      = "SUB"
	RETURN   = "RETURN"
	BREAK    = "BREAK"
	CONTINUE = "CONTINUE"
	END      = "END"
	SWITCH   = "SWITCH"
	SELECT   = "SELECT"
	CASE     = "CASE"
	DO       = "DO"
	AND      = "AND"
	OR       = "OR"
	NOT      = "NOT"
)

var keywords = map[string]TokenType{
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"fn":       FN,
	"sub":      SUB,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"end":      END,
	"switch":   SWITCH,
	"select":   SELECT,
	"case":     CASE,
	"do":       DO,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"true":     TRUE,
	"false":    FALSE,
}

// LookupIdent classifies a word as a keyword or an identifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsCompoundAssign reports whether t is one of += -= *= /= %=.
func IsCompoundAssign(t TokenType) bool {
	switch t {
	case PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN:
		return true
	}
	return false
}

// CompoundOperator maps a compound assignment to its binary operator.
func CompoundOperator(t TokenType) TokenType {
	switch t {
	case PLUS_ASSIGN:
		return PLUS
	case MINUS_ASSIGN:
		return MINUS
	case ASTERISK_ASSIGN:
		return ASTERISK
	case SLASH_ASSIGN:
		return SLASH
	case PERCENT_ASSIGN:
		return PERCENT
	}
	return ILLEGAL
}
