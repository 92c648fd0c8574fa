package compiler

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/evaluator"
)

// compileStatements runs the statements in order and stops at the first
// one that signals Transfer.
func (c *Compiler) compileStatements(stmts []ast.Statement) (evaluator.StmtFunc, error) {
	units := make([]evaluator.StmtFunc, len(stmts))
	for i, s := range stmts {
		u, err := c.compileStatement(s)
		if err != nil {
			return nil, err
		}
		units[i] = u
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		for _, u := range units {
			sig, err := u(ctx)
			if err != nil {
				return evaluator.Normal, err
			}
			if sig == evaluator.Transfer {
				return evaluator.Transfer, nil
			}
		}
		return evaluator.Normal, nil
	}, nil
}

// compileAssign compiles the value first, so `x = x + 1` on an undeclared
// x is an undefined variable rather than a read of the new binding.
func (c *Compiler) compileAssign(as *ast.AssignStatement) (evaluator.StmtFunc, error) {
	value, err := c.compileExpression(as.Value)
	if err != nil {
		return nil, err
	}
	name := as.Name.Value
	depth, ok := c.scope.resolve(name)
	if !ok {
		depth = c.declare(name)
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		v, err := value(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		ctx.Store(depth, name, v)
		return evaluator.Normal, nil
	}, nil
}

func (c *Compiler) compileAssignIndex(ai *ast.AssignIndexStatement) (evaluator.StmtFunc, error) {
	target, err := c.compileExpression(ai.Target)
	if err != nil {
		return nil, err
	}
	index, err := c.compileExpression(ai.Index)
	if err != nil {
		return nil, err
	}
	value, err := c.compileExpression(ai.Value)
	if err != nil {
		return nil, err
	}
	tok := ai.Token
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		t, err := target(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		i, err := index(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		v, err := value(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		if err := evaluator.SetIndex(t, i, v); err != nil {
			return evaluator.Normal, at(tok, err)
		}
		return evaluator.Normal, nil
	}, nil
}

func (c *Compiler) compileCallStatement(cs *ast.CallStatement) (evaluator.StmtFunc, error) {
	call, err := c.compileApply(cs.Token, cs.Callee, cs.Arguments, false)
	if err != nil {
		return nil, err
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		_, err := call(ctx)
		return evaluator.Normal, err
	}, nil
}

// compileBranch compiles a branch body in its own frame.
func (c *Compiler) compileBranch(body ast.Statement) (evaluator.StmtFunc, error) {
	var unit evaluator.StmtFunc
	err := c.scoped(func() error {
		var err error
		unit, err = c.compileStatement(body)
		return err
	})
	return unit, err
}

// compileCondition compiles an expression that must yield a boolean.
func (c *Compiler) compileCondition(expr ast.Expression) (func(*evaluator.Context) (bool, error), error) {
	cond, err := c.compileExpression(expr)
	if err != nil {
		return nil, err
	}
	tok := expr.GetToken()
	return func(ctx *evaluator.Context) (bool, error) {
		v, err := cond(ctx)
		if err != nil {
			return false, err
		}
		b, err := evaluator.Condition(v)
		if err != nil {
			return false, at(tok, err)
		}
		return b, nil
	}, nil
}

func (c *Compiler) compileIf(is *ast.IfStatement) (evaluator.StmtFunc, error) {
	cond, err := c.compileCondition(is.Condition)
	if err != nil {
		return nil, err
	}
	then, err := c.compileBranch(is.Consequence)
	if err != nil {
		return nil, err
	}
	var otherwise evaluator.StmtFunc
	if is.Alternative != nil {
		if otherwise, err = c.compileBranch(is.Alternative); err != nil {
			return nil, err
		}
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		ok, err := cond(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		if ok {
			return then(ctx)
		}
		if otherwise != nil {
			return otherwise(ctx)
		}
		return evaluator.Normal, nil
	}, nil
}

type arm struct {
	match evaluator.ExprFunc
	body  evaluator.StmtFunc
}

func (c *Compiler) compileArms(cases []*ast.CaseClause, fallback ast.Statement) ([]arm, evaluator.StmtFunc, error) {
	arms := make([]arm, len(cases))
	for i, cc := range cases {
		m, err := c.compileExpression(cc.Match)
		if err != nil {
			return nil, nil, err
		}
		body, err := c.compileBranch(cc.Body)
		if err != nil {
			return nil, nil, err
		}
		arms[i] = arm{match: m, body: body}
	}
	var otherwise evaluator.StmtFunc
	if fallback != nil {
		var err error
		if otherwise, err = c.compileBranch(fallback); err != nil {
			return nil, nil, err
		}
	}
	return arms, otherwise, nil
}

// compileSwitch runs the first case equal to the subject, or the else body.
func (c *Compiler) compileSwitch(ss *ast.SwitchStatement) (evaluator.StmtFunc, error) {
	subject, err := c.compileExpression(ss.Value)
	if err != nil {
		return nil, err
	}
	arms, otherwise, err := c.compileArms(ss.Cases, ss.Default)
	if err != nil {
		return nil, err
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		v, err := subject(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		for _, a := range arms {
			m, err := a.match(ctx)
			if err != nil {
				return evaluator.Normal, err
			}
			if evaluator.ObjectsEqual(v, m) {
				return a.body(ctx)
			}
		}
		if otherwise != nil {
			return otherwise(ctx)
		}
		return evaluator.Normal, nil
	}, nil
}

// compileSelect runs the first case whose condition holds, or the else body.
func (c *Compiler) compileSelect(ss *ast.SelectStatement) (evaluator.StmtFunc, error) {
	arms, otherwise, err := c.compileArms(ss.Cases, ss.Default)
	if err != nil {
		return nil, err
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		for i, a := range arms {
			v, err := a.match(ctx)
			if err != nil {
				return evaluator.Normal, err
			}
			ok, err := evaluator.Condition(v)
			if err != nil {
				return evaluator.Normal, at(ss.Cases[i].Match.GetToken(), err)
			}
			if ok {
				return a.body(ctx)
			}
		}
		if otherwise != nil {
			return otherwise(ctx)
		}
		return evaluator.Normal, nil
	}, nil
}

// compileReturn records the value in the Context and signals Transfer. A
// bare return leaves the slot empty.
func (c *Compiler) compileReturn(rs *ast.ReturnStatement) (evaluator.StmtFunc, error) {
	if rs.Value == nil {
		return func(*evaluator.Context) (evaluator.Signal, error) {
			return evaluator.Transfer, nil
		}, nil
	}
	value, err := c.compileExpression(rs.Value)
	if err != nil {
		return nil, err
	}
	tok := rs.Token
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		v, err := value(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		ctx.SetReturn(v, tok)
		return evaluator.Transfer, nil
	}, nil
}

func (c *Compiler) compileBreak(bs *ast.BreakStatement) (evaluator.StmtFunc, error) {
	if c.scope.loops == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrC002, bs.Token, "break")
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		ctx.SetBreak()
		return evaluator.Transfer, nil
	}, nil
}

func (c *Compiler) compileContinue(cs *ast.ContinueStatement) (evaluator.StmtFunc, error) {
	if c.scope.loops == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrC002, cs.Token, "continue")
	}
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		ctx.SetContinue()
		return evaluator.Transfer, nil
	}, nil
}
