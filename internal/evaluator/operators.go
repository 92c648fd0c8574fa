package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

// OperatorName is the source spelling of op used in messages.
func OperatorName(op token.TokenType) string {
	switch op {
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.NOT:
		return "not"
	}
	return string(op)
}

func typeError(op token.TokenType, left, right Value) error {
	return diagnostics.Errorf(diagnostics.ErrR001,
		fmt.Sprintf("invalid operand types for %s: %s and %s", OperatorName(op), left.Type(), right.Type()))
}

// TypeError reports an operator applied to unsupported operand kinds.
func TypeError(op token.TokenType, left, right Value) error {
	return typeError(op, left, right)
}

// BinaryOp applies an arithmetic, comparison or equality operator. The
// logical operators short-circuit and are handled by the compiler.
func BinaryOp(op token.TokenType, left, right Value) (Value, error) {
	switch op {
	case token.EQ:
		return NativeBool(ObjectsEqual(left, right)), nil
	case token.NOT_EQ:
		return NativeBool(!ObjectsEqual(left, right)), nil
	}

	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return integerOp(op, l.Value, r.Value, left, right)
		}
	case *Float:
		if r, ok := right.(*Float); ok {
			return floatOp(op, l.Value, r.Value, left, right)
		}
	case *String:
		if op == token.PLUS {
			return &String{Value: l.Value + Display(right)}, nil
		}
		if r, ok := right.(*String); ok {
			if res, ok := compare(op, strings.Compare(l.Value, r.Value)); ok {
				return res, nil
			}
		}
	}
	return nil, typeError(op, left, right)
}

func integerOp(op token.TokenType, a, b int64, left, right Value) (Value, error) {
	switch op {
	case token.PLUS:
		return &Integer{Value: a + b}, nil
	case token.MINUS:
		return &Integer{Value: a - b}, nil
	case token.ASTERISK:
		return &Integer{Value: a * b}, nil
	case token.SLASH:
		if b == 0 {
			return nil, diagnostics.Errorf(diagnostics.ErrR013)
		}
		return &Integer{Value: a / b}, nil
	case token.PERCENT:
		if b == 0 {
			return nil, diagnostics.Errorf(diagnostics.ErrR013)
		}
		return &Integer{Value: a % b}, nil
	}
	cmp := 0
	if a < b {
		cmp = -1
	} else if a > b {
		cmp = 1
	}
	if res, ok := compare(op, cmp); ok {
		return res, nil
	}
	return nil, typeError(op, left, right)
}

func floatOp(op token.TokenType, a, b float64, left, right Value) (Value, error) {
	switch op {
	case token.PLUS:
		return &Float{Value: a + b}, nil
	case token.MINUS:
		return &Float{Value: a - b}, nil
	case token.ASTERISK:
		return &Float{Value: a * b}, nil
	case token.SLASH:
		return &Float{Value: a / b}, nil
	case token.PERCENT:
		return &Float{Value: math.Mod(a, b)}, nil
	case token.LT:
		return NativeBool(a < b), nil
	case token.LTE:
		return NativeBool(a <= b), nil
	case token.GT:
		return NativeBool(a > b), nil
	case token.GTE:
		return NativeBool(a >= b), nil
	}
	return nil, typeError(op, left, right)
}

// compare maps a three-way comparison result onto an ordering operator.
func compare(op token.TokenType, cmp int) (Value, bool) {
	switch op {
	case token.LT:
		return NativeBool(cmp < 0), true
	case token.LTE:
		return NativeBool(cmp <= 0), true
	case token.GT:
		return NativeBool(cmp > 0), true
	case token.GTE:
		return NativeBool(cmp >= 0), true
	}
	return nil, false
}

// UnaryOp applies `-` (floats only) or `not` (booleans only).
func UnaryOp(op token.TokenType, operand Value) (Value, error) {
	switch op {
	case token.MINUS:
		if f, ok := operand.(*Float); ok {
			return &Float{Value: -f.Value}, nil
		}
	case token.NOT:
		if b, ok := operand.(*Boolean); ok {
			return NativeBool(!b.Value), nil
		}
	}
	return nil, diagnostics.Errorf(diagnostics.ErrR001,
		fmt.Sprintf("invalid operand type for %s: %s", OperatorName(op), operand.Type()))
}

// Condition checks that the condition of an if, while or select case is a
// Boolean.
func Condition(v Value) (bool, error) {
	if b, ok := v.(*Boolean); ok {
		return b.Value, nil
	}
	return false, diagnostics.Errorf(diagnostics.ErrR001,
		fmt.Sprintf("condition must be bool, got %s", v.Type()))
}
