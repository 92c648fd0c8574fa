package compiler

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/evaluator"
)

// loopBody compiles a loop body in its own frame with break and continue
// allowed. prepare runs inside that frame before the body compiles.
func (c *Compiler) loopBody(body ast.Statement, prepare func()) (evaluator.StmtFunc, error) {
	var unit evaluator.StmtFunc
	c.scope.loops++
	defer func() { c.scope.loops-- }()
	err := c.scoped(func() error {
		if prepare != nil {
			prepare()
		}
		var err error
		unit, err = c.compileStatement(body)
		return err
	})
	return unit, err
}

// afterBody interprets a Transfer out of a loop body. It reports whether
// the loop should stop and the signal the loop should return.
func afterBody(ctx *evaluator.Context) (stop bool, sig evaluator.Signal) {
	if ctx.TakeBreak() {
		return true, evaluator.Normal
	}
	if ctx.TakeContinue() {
		return false, evaluator.Normal
	}
	return true, evaluator.Transfer
}

func (c *Compiler) compileWhile(ws *ast.WhileStatement) (evaluator.StmtFunc, error) {
	cond, err := c.compileCondition(ws.Condition)
	if err != nil {
		return nil, err
	}
	body, err := c.loopBody(ws.Body, nil)
	if err != nil {
		return nil, err
	}
	tok := ws.Token
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		for {
			if err := ctx.CheckInterrupt(); err != nil {
				return evaluator.Normal, at(tok, err)
			}
			ok, err := cond(ctx)
			if err != nil {
				return evaluator.Normal, err
			}
			if !ok {
				return evaluator.Normal, nil
			}
			sig, err := body(ctx)
			if err != nil {
				return evaluator.Normal, err
			}
			if sig == evaluator.Transfer {
				if stop, out := afterBody(ctx); stop {
					return out, nil
				}
			}
		}
	}, nil
}

// compileFor binds the loop variable in the body's frame. The iterable is
// evaluated once; lists are iterated over a snapshot.
func (c *Compiler) compileFor(fs *ast.ForStatement) (evaluator.StmtFunc, error) {
	iterable, err := c.compileExpression(fs.Iterable)
	if err != nil {
		return nil, err
	}
	name := fs.Variable.Value
	var depth int
	body, err := c.loopBody(fs.Body, func() {
		depth = c.declare(name)
	})
	if err != nil {
		return nil, err
	}
	tok := fs.Token
	iterTok := fs.Iterable.GetToken()
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		coll, err := iterable(ctx)
		if err != nil {
			return evaluator.Normal, err
		}
		items, err := evaluator.Iterate(coll)
		if err != nil {
			return evaluator.Normal, at(iterTok, err)
		}
		for _, item := range items {
			if err := ctx.CheckInterrupt(); err != nil {
				return evaluator.Normal, at(tok, err)
			}
			ctx.Store(depth, name, item)
			sig, err := body(ctx)
			if err != nil {
				return evaluator.Normal, err
			}
			if sig == evaluator.Transfer {
				if stop, out := afterBody(ctx); stop {
					return out, nil
				}
			}
		}
		return evaluator.Normal, nil
	}, nil
}
