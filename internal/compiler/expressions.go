package compiler

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/evaluator"
	"github.com/funvibe/aurora/internal/token"
)

func (c *Compiler) compileLiteral(lit *ast.Literal) (evaluator.ExprFunc, error) {
	var v evaluator.Value
	switch val := lit.Token.Literal.(type) {
	case int64:
		v = &evaluator.Integer{Value: val}
	case float64:
		v = &evaluator.Float{Value: val}
	case string:
		v = &evaluator.String{Value: val}
	case bool:
		v = evaluator.NativeBool(val)
	default:
		return nil, diagnostics.NewError(diagnostics.ErrP001, lit.Token, lit.Token.Lexeme)
	}
	return func(*evaluator.Context) (evaluator.Value, error) { return v, nil }, nil
}

func (c *Compiler) compileVariable(v *ast.Variable) (evaluator.ExprFunc, error) {
	depth, ok := c.scope.resolve(v.Name)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrC001, v.Token, v.Name)
	}
	name, tok := v.Name, v.Token
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		val, ok := ctx.Lookup(depth, name)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrR009, tok, name)
		}
		return val, nil
	}, nil
}

func (c *Compiler) compileUnary(u *ast.UnaryExpression) (evaluator.ExprFunc, error) {
	right, err := c.compileExpression(u.Right)
	if err != nil {
		return nil, err
	}
	op, tok := u.Operator, u.Token
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		v, err := right(ctx)
		if err != nil {
			return nil, err
		}
		res, err := evaluator.UnaryOp(op, v)
		if err != nil {
			return nil, at(tok, err)
		}
		return res, nil
	}, nil
}

func (c *Compiler) compileBinary(b *ast.BinaryExpression) (evaluator.ExprFunc, error) {
	if b.Operator == token.PIPE {
		return c.compilePipe(b)
	}
	left, err := c.compileExpression(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compileExpression(b.Right)
	if err != nil {
		return nil, err
	}
	op, tok := b.Operator, b.Token

	switch op {
	case token.AND, token.OR:
		return logical(op, tok, left, right), nil
	case token.ARROW:
		return func(ctx *evaluator.Context) (evaluator.Value, error) {
			coll, err := left(ctx)
			if err != nil {
				return nil, err
			}
			fn, err := right(ctx)
			if err != nil {
				return nil, err
			}
			res, err := evaluator.MapOver(ctx, coll, fn)
			if err != nil {
				return nil, at(tok, err)
			}
			return res, nil
		}, nil
	}

	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		l, err := left(ctx)
		if err != nil {
			return nil, err
		}
		r, err := right(ctx)
		if err != nil {
			return nil, err
		}
		res, err := evaluator.BinaryOp(op, l, r)
		if err != nil {
			return nil, at(tok, err)
		}
		return res, nil
	}, nil
}

// logical short-circuits `and` and `or`. Both operands must be booleans;
// when the left one is not, the right one is still evaluated so the error
// can name both kinds.
func logical(op token.TokenType, tok token.Token, left, right evaluator.ExprFunc) evaluator.ExprFunc {
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		l, err := left(ctx)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(*evaluator.Boolean)
		if !ok {
			r, err := right(ctx)
			if err != nil {
				return nil, err
			}
			return nil, at(tok, evaluator.TypeError(op, l, r))
		}
		if op == token.AND && !lb.Value {
			return evaluator.FALSE, nil
		}
		if op == token.OR && lb.Value {
			return evaluator.TRUE, nil
		}
		r, err := right(ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := r.(*evaluator.Boolean); !ok {
			return nil, at(tok, evaluator.TypeError(op, l, r))
		}
		return r, nil
	}
}

// compilePipe handles `a |> f` as f(a) and `a |> f(x, y)` as f(a, x, y).
// Which form applies is decided by the shape of the right operand.
func (c *Compiler) compilePipe(b *ast.BinaryExpression) (evaluator.ExprFunc, error) {
	left, err := c.compileExpression(b.Left)
	if err != nil {
		return nil, err
	}
	calleeExpr := b.Right
	var extra []ast.Expression
	if call, ok := b.Right.(*ast.CallExpression); ok {
		calleeExpr = call.Callee
		extra = call.Arguments
	}
	callee, err := c.compileExpression(calleeExpr)
	if err != nil {
		return nil, err
	}
	args, err := c.compileExpressions(extra)
	if err != nil {
		return nil, err
	}
	tok := b.Token
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		first, err := left(ctx)
		if err != nil {
			return nil, err
		}
		fn, err := callee(ctx)
		if err != nil {
			return nil, err
		}
		rest, err := evalAll(ctx, args)
		if err != nil {
			return nil, err
		}
		res, err := evaluator.Apply(ctx, fn, append([]evaluator.Value{first}, rest...), true)
		if err != nil {
			return nil, at(tok, err)
		}
		return res, nil
	}, nil
}

func (c *Compiler) compileList(l *ast.ListLiteral) (evaluator.ExprFunc, error) {
	elems, err := c.compileExpressions(l.Elements)
	if err != nil {
		return nil, err
	}
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		vals, err := evalAll(ctx, elems)
		if err != nil {
			return nil, err
		}
		return evaluator.NewList(vals...), nil
	}, nil
}

func (c *Compiler) compileMap(m *ast.MapLiteral) (evaluator.ExprFunc, error) {
	keys := make([]evaluator.ExprFunc, len(m.Pairs))
	values := make([]evaluator.ExprFunc, len(m.Pairs))
	for i, pair := range m.Pairs {
		k, err := c.compileExpression(pair.Key)
		if err != nil {
			return nil, err
		}
		v, err := c.compileExpression(pair.Value)
		if err != nil {
			return nil, err
		}
		keys[i], values[i] = k, v
	}
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		out := evaluator.NewMap()
		for i := range keys {
			k, err := keys[i](ctx)
			if err != nil {
				return nil, err
			}
			v, err := values[i](ctx)
			if err != nil {
				return nil, err
			}
			out.Set(k, v)
		}
		return out, nil
	}, nil
}

func (c *Compiler) compileIndex(ie *ast.IndexExpression) (evaluator.ExprFunc, error) {
	target, err := c.compileExpression(ie.Target)
	if err != nil {
		return nil, err
	}
	index, err := c.compileExpression(ie.Index)
	if err != nil {
		return nil, err
	}
	tok := ie.Token
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		t, err := target(ctx)
		if err != nil {
			return nil, err
		}
		i, err := index(ctx)
		if err != nil {
			return nil, err
		}
		v, err := evaluator.Index(t, i)
		if err != nil {
			return nil, at(tok, err)
		}
		return v, nil
	}, nil
}

// compileCall compiles a call in value position; subroutines are rejected
// there at run time.
func (c *Compiler) compileCall(ce *ast.CallExpression) (evaluator.ExprFunc, error) {
	return c.compileApply(ce.Token, ce.Callee, ce.Arguments, true)
}

// compileApply evaluates the callee, then the arguments left to right, then
// applies the callable protocol.
func (c *Compiler) compileApply(tok token.Token, calleeExpr ast.Expression, argExprs []ast.Expression, wantValue bool) (evaluator.ExprFunc, error) {
	callee, err := c.compileExpression(calleeExpr)
	if err != nil {
		return nil, err
	}
	args, err := c.compileExpressions(argExprs)
	if err != nil {
		return nil, err
	}
	return func(ctx *evaluator.Context) (evaluator.Value, error) {
		fn, err := callee(ctx)
		if err != nil {
			return nil, err
		}
		vals, err := evalAll(ctx, args)
		if err != nil {
			return nil, err
		}
		res, err := evaluator.Apply(ctx, fn, vals, wantValue)
		if err != nil {
			return nil, at(tok, err)
		}
		return res, nil
	}, nil
}
