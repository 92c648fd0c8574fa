package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/aurora/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // invalid token
	ErrL002 ErrorCode = "L002" // unterminated string

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token
	ErrP003 ErrorCode = "P003" // invalid assignment target

	// Compiler
	ErrC001 ErrorCode = "C001" // undefined variable
	ErrC002 ErrorCode = "C002" // break/continue outside loop
	ErrC003 ErrorCode = "C003" // duplicate parameter

	// Runtime
	ErrR001 ErrorCode = "R001" // type error
	ErrR002 ErrorCode = "R002" // arity mismatch
	ErrR003 ErrorCode = "R003" // subroutine in expression
	ErrR004 ErrorCode = "R004" // not indexable
	ErrR005 ErrorCode = "R005" // not mappable
	ErrR006 ErrorCode = "R006" // missing return value
	ErrR007 ErrorCode = "R007" // unexpected return value
	ErrR008 ErrorCode = "R008" // assertion failure or bad index assignment target
	ErrR009 ErrorCode = "R009" // variable has no value
	ErrR010 ErrorCode = "R010" // not callable
	ErrR011 ErrorCode = "R011" // index out of range
	ErrR012 ErrorCode = "R012" // key not found
	ErrR013 ErrorCode = "R013" // division by zero
	ErrR014 ErrorCode = "R014" // native failure
	ErrR015 ErrorCode = "R015" // not iterable
	ErrR016 ErrorCode = "R016" // interrupted
	ErrR017 ErrorCode = "R017" // call depth exceeded
)

var errorTemplates = map[ErrorCode]string{
	ErrL001: "invalid token %q",
	ErrL002: "unterminated string",

	ErrP001: "unexpected token %s",
	ErrP002: "expected %s, got %s",
	ErrP003: "invalid assignment target",

	ErrC001: "undefined variable '%s'",
	ErrC002: "'%s' outside of a loop",
	ErrC003: "duplicate parameter '%s'",

	ErrR001: "%s",
	ErrR002: "arity mismatch calling %s: expected %d arguments, got %d",
	ErrR003: "cannot call subroutine %s in expression",
	ErrR004: "value of kind %s is not indexable",
	ErrR005: "value of kind %s is not mappable",
	ErrR006: "function %s finished without returning a value",
	ErrR007: "%s returned a value",
	ErrR008: "%s",
	ErrR009: "variable '%s' has no value",
	ErrR010: "value of kind %s is not callable",
	ErrR011: "index %d out of range for list of length %d",
	ErrR012: "key %s not found",
	ErrR013: "division by zero",
	ErrR014: "%s",
	ErrR015: "cannot iterate over value of kind %s",
	ErrR016: "execution interrupted",
	ErrR017: "maximum call depth of %d exceeded",
}

// DiagnosticError is the single error type produced by every stage.
// A zero Token.Line means the position is not known yet; callers that know
// the source location attach it with Locate.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError builds a diagnostic from the code's message template.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	msg := string(code)
	if tmpl, ok := errorTemplates[code]; ok {
		msg = fmt.Sprintf(tmpl, args...)
	} else if len(args) > 0 {
		msg = fmt.Sprint(args...)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

// Errorf builds a positionless diagnostic; the compiled unit that observes it
// fills in the location.
func Errorf(code ErrorCode, args ...interface{}) *DiagnosticError {
	return NewError(code, token.Token{}, args...)
}

func (e *DiagnosticError) Error() string {
	prefix := ""
	if e.File != "" {
		prefix = e.File + ":"
	}
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s%d:%d: error [%s]: %s", prefix, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%serror [%s]: %s", prefix, e.Code, e.Message)
}

// HasPosition reports whether a source location is attached.
func (e *DiagnosticError) HasPosition() bool {
	return e.Token.Line > 0
}

// Locate attaches tok to err when err carries no position yet. Errors that
// are not diagnostics (native Go failures) are wrapped as ErrR014. Errors
// that already know where they happened pass through untouched.
func Locate(err error, tok token.Token) error {
	if err == nil {
		return nil
	}
	var de *DiagnosticError
	if !errors.As(err, &de) {
		return NewError(ErrR014, tok, err.Error())
	}
	if de.HasPosition() {
		return err
	}
	located := *de
	located.Token = tok
	return &located
}

// AsDiagnostic unwraps err into a diagnostic, wrapping foreign errors.
func AsDiagnostic(err error) *DiagnosticError {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de
	}
	return NewError(ErrR014, token.Token{}, err.Error())
}

// IsCode reports whether err is a diagnostic with the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *DiagnosticError
	return errors.As(err, &de) && de.Code == code
}
