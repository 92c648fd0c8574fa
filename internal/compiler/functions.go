package compiler

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/evaluator"
)

const (
	lambdaName  = "lambda"
	doBlockName = "do"
)

// callableBody is a compiled function-like body.
type callableBody struct {
	params []string
	frames int
	run    evaluator.StmtFunc
}

// compileBody compiles a function-like body against a fresh scope holding
// only the globals, so enclosing locals are not visible inside it.
// Parameters live at depth 1.
func (c *Compiler) compileBody(params []*ast.Identifier, body ast.Statement) (*callableBody, error) {
	saved := c.scope
	c.scope = newScope(c.globals)
	defer func() { c.scope = saved }()

	c.scope.push()
	for _, p := range params {
		if c.scope.frames[1][p.Value] {
			return nil, diagnostics.NewError(diagnostics.ErrC003, p.Token, p.Value)
		}
		c.scope.frames[1][p.Value] = true
	}
	run, err := c.compileStatement(body)
	if err != nil {
		return nil, err
	}
	return &callableBody{
		params: ast.Names(params),
		frames: c.scope.frameCount(),
		run:    run,
	}, nil
}

// compileFunction binds a named function in the global frame. The name is
// declared before the body compiles so the body can call itself.
func (c *Compiler) compileFunction(fs *ast.FunctionStatement) (evaluator.StmtFunc, error) {
	name := fs.Name.Value
	c.declareGlobal(name)
	b, err := c.compileBody(fs.Params, fs.Body)
	if err != nil {
		return nil, err
	}
	fn := evaluator.NewUserFunction(name, b.params, b.frames, b.run, fs.Token)
	return bindGlobal(name, fn), nil
}

func (c *Compiler) compileSubroutine(ss *ast.SubroutineStatement) (evaluator.StmtFunc, error) {
	name := ss.Name.Value
	c.declareGlobal(name)
	b, err := c.compileBody(ss.Params, ss.Body)
	if err != nil {
		return nil, err
	}
	sub := evaluator.NewUserSubroutine(name, b.params, b.frames, b.run, ss.Token)
	return bindGlobal(name, sub), nil
}

func bindGlobal(name string, v evaluator.Value) evaluator.StmtFunc {
	return func(ctx *evaluator.Context) (evaluator.Signal, error) {
		ctx.Store(0, name, v)
		return evaluator.Normal, nil
	}
}

func (c *Compiler) compileLambda(l *ast.Lambda) (evaluator.ExprFunc, error) {
	b, err := c.compileBody(l.Params, l.Body)
	if err != nil {
		return nil, err
	}
	fn := evaluator.NewUserFunction(lambdaName, b.params, b.frames, b.run, l.Token)
	return func(*evaluator.Context) (evaluator.Value, error) { return fn, nil }, nil
}

func (c *Compiler) compileDoBlock(d *ast.DoBlock) (evaluator.ExprFunc, error) {
	b, err := c.compileBody(d.Params, d.Body)
	if err != nil {
		return nil, err
	}
	sub := evaluator.NewUserSubroutine(doBlockName, b.params, b.frames, b.run, d.Token)
	return func(*evaluator.Context) (evaluator.Value, error) { return sub, nil }, nil
}
