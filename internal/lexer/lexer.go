package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/aurora/internal/token"
)

const unterminatedString = "unterminated string"

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

// Tokenize runs the lexer to EOF. The EOF token is always the last element.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	line, col := l.line, l.column

	// two-character operators
	twoChar := func(tt token.TokenType, lexeme string) token.Token {
		l.readChar()
		l.readChar()
		return token.Token{Type: tt, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
	}

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Line: line, Column: col}
	case '\n':
		tok = newToken(token.NEWLINE, l.ch, line, col)
	case '=':
		if l.peekChar() == '=' {
			return twoChar(token.EQ, "==")
		}
		tok = newToken(token.ASSIGN, l.ch, line, col)
	case '+':
		if l.peekChar() == '=' {
			return twoChar(token.PLUS_ASSIGN, "+=")
		}
		tok = newToken(token.PLUS, l.ch, line, col)
	case '-':
		if l.peekChar() == '>' {
			return twoChar(token.ARROW, "->")
		} else if l.peekChar() == '=' {
			return twoChar(token.MINUS_ASSIGN, "-=")
		}
		tok = newToken(token.MINUS, l.ch, line, col)
	case '*':
		if l.peekChar() == '=' {
			return twoChar(token.ASTERISK_ASSIGN, "*=")
		}
		tok = newToken(token.ASTERISK, l.ch, line, col)
	case '/':
		if l.peekChar() == '=' {
			return twoChar(token.SLASH_ASSIGN, "/=")
		}
		tok = newToken(token.SLASH, l.ch, line, col)
	case '%':
		if l.peekChar() == '=' {
			return twoChar(token.PERCENT_ASSIGN, "%=")
		}
		tok = newToken(token.PERCENT, l.ch, line, col)
	case '!':
		if l.peekChar() == '=' {
			return twoChar(token.NOT_EQ, "!=")
		}
		tok = illegal(string(l.ch), line, col)
	case '<':
		if l.peekChar() == '=' {
			return twoChar(token.LTE, "<=")
		}
		tok = newToken(token.LT, l.ch, line, col)
	case '>':
		if l.peekChar() == '=' {
			return twoChar(token.GTE, ">=")
		}
		tok = newToken(token.GT, l.ch, line, col)
	case '|':
		if l.peekChar() == '>' {
			return twoChar(token.PIPE, "|>")
		}
		tok = illegal(string(l.ch), line, col)
	case ',':
		tok = newToken(token.COMMA, l.ch, line, col)
	case ':':
		tok = newToken(token.COLON, l.ch, line, col)
	case '(':
		tok = newToken(token.LPAREN, l.ch, line, col)
	case ')':
		tok = newToken(token.RPAREN, l.ch, line, col)
	case '{':
		tok = newToken(token.LBRACE, l.ch, line, col)
	case '}':
		tok = newToken(token.RBRACE, l.ch, line, col)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, line, col)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, line, col)
	case '"':
		return l.readString(line, col)
	case '`':
		return l.readRawString(line, col)
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			tt := token.LookupIdent(ident)
			tok = token.Token{Type: tt, Lexeme: ident, Line: line, Column: col}
			switch tt {
			case token.TRUE:
				tok.Literal = true
			case token.FALSE:
				tok.Literal = false
			}
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber(line, col)
		}
		tok = illegal(string(l.ch), line, col)
	}

	l.readChar()
	return tok
}

// readString reads a double-quoted string with \n \t \r \" \\ \0 escapes.
// Strings may span lines.
func (l *Lexer) readString(line, col int) token.Token {
	start := l.position
	var out strings.Builder
	l.readChar() // opening quote
	for {
		switch l.ch {
		case 0:
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:min(l.position, len(l.input))], Literal: unterminatedString, Line: line, Column: col}
		case '"':
			l.readChar()
			return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Literal: out.String(), Line: line, Column: col}
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case 'r':
				out.WriteRune('\r')
			case '0':
				out.WriteRune(0)
			case '"', '\\':
				out.WriteRune(l.ch)
			case 0:
				continue
			default:
				out.WriteRune('\\')
				out.WriteRune(l.ch)
			}
		default:
			out.WriteRune(l.ch)
		}
		l.readChar()
	}
}

// readRawString reads a backtick string verbatim.
func (l *Lexer) readRawString(line, col int) token.Token {
	start := l.position
	l.readChar() // opening backtick
	bodyStart := l.position
	for l.ch != '`' {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:min(l.position, len(l.input))], Literal: unterminatedString, Line: line, Column: col}
		}
		l.readChar()
	}
	body := l.input[bodyStart:l.position]
	l.readChar()
	return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Literal: body, Line: line, Column: col}
}

// readIdentifier reads letters, digits and underscores, plus one trailing
// '?' or '!' (exists?, map!). A '!' followed by '=' stays an operator.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '?' || (l.ch == '!' && l.peekChar() != '=') {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber(line, col int) token.Token {
	position := l.position
	isFloat := false

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar() // .
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[position:l.position]
	if isFloat {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Line: line, Column: col}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: line, Column: col}
	}
	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "integer literal out of range", Line: line, Column: col}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func illegal(lexeme string, line, col int) token.Token {
	return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		// '#' comments run to end of line
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}
