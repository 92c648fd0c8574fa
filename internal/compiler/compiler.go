// Package compiler turns a parsed program into a tree of Go closures.
// Names are resolved to frame depths once, at compile time; the closures
// only touch the evaluator.Context they are run with.
package compiler

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/evaluator"
	"github.com/funvibe/aurora/internal/token"
)

// Compiler compiles programs against a global name set that outlives it.
// The set is shared with whoever binds the runtime globals, so names
// declared by one compile are visible to the next.
type Compiler struct {
	globals map[string]bool
	scope   *scope
	// added lists globals first declared by the current compile.
	added []string
}

// New creates a compiler over the given global name set.
func New(globals map[string]bool) *Compiler {
	if globals == nil {
		globals = make(map[string]bool)
	}
	return &Compiler{globals: globals}
}

// Unit is a compiled top-level program.
type Unit struct {
	run    evaluator.StmtFunc
	frames int
}

// Frames is the size of the frame array the unit runs in.
func (u *Unit) Frames() int { return u.frames }

// Run executes the unit at top level. A top-level return ends the run
// and its value is dropped.
func (u *Unit) Run(ctx *evaluator.Context) error {
	saved := ctx.Enter(u.frames)
	defer ctx.Leave(saved)
	_, err := u.run(ctx)
	ctx.TakeReturn()
	return err
}

// Compile compiles program. On failure the global names the program would
// have declared are forgotten, so nothing of a failed compile is visible.
func (c *Compiler) Compile(program *ast.Program) (*Unit, error) {
	c.scope = newScope(c.globals)
	c.added = nil
	body, err := c.compileStatements(program.Statements)
	if err != nil {
		c.rollback()
		return nil, err
	}
	c.added = nil
	return &Unit{run: body, frames: c.scope.frameCount()}, nil
}

// at attaches tok to a runtime error that has no position yet.
func at(tok token.Token, err error) error {
	return diagnostics.Locate(err, tok)
}

func (c *Compiler) compileStatement(stmt ast.Statement) (evaluator.StmtFunc, error) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return c.compileStatements(s.Statements)
	case *ast.AssignStatement:
		return c.compileAssign(s)
	case *ast.AssignIndexStatement:
		return c.compileAssignIndex(s)
	case *ast.CallStatement:
		return c.compileCallStatement(s)
	case *ast.IfStatement:
		return c.compileIf(s)
	case *ast.WhileStatement:
		return c.compileWhile(s)
	case *ast.ForStatement:
		return c.compileFor(s)
	case *ast.SwitchStatement:
		return c.compileSwitch(s)
	case *ast.SelectStatement:
		return c.compileSelect(s)
	case *ast.FunctionStatement:
		return c.compileFunction(s)
	case *ast.SubroutineStatement:
		return c.compileSubroutine(s)
	case *ast.ReturnStatement:
		return c.compileReturn(s)
	case *ast.BreakStatement:
		return c.compileBreak(s)
	case *ast.ContinueStatement:
		return c.compileContinue(s)
	}
	return nil, diagnostics.NewError(diagnostics.ErrP001, stmt.GetToken(), stmt.TokenLiteral())
}

func (c *Compiler) compileExpression(expr ast.Expression) (evaluator.ExprFunc, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.compileLiteral(e)
	case *ast.Variable:
		return c.compileVariable(e)
	case *ast.UnaryExpression:
		return c.compileUnary(e)
	case *ast.BinaryExpression:
		return c.compileBinary(e)
	case *ast.ListLiteral:
		return c.compileList(e)
	case *ast.MapLiteral:
		return c.compileMap(e)
	case *ast.IndexExpression:
		return c.compileIndex(e)
	case *ast.CallExpression:
		return c.compileCall(e)
	case *ast.Lambda:
		return c.compileLambda(e)
	case *ast.DoBlock:
		return c.compileDoBlock(e)
	}
	return nil, diagnostics.NewError(diagnostics.ErrP001, expr.GetToken(), expr.TokenLiteral())
}

func (c *Compiler) compileExpressions(exprs []ast.Expression) ([]evaluator.ExprFunc, error) {
	out := make([]evaluator.ExprFunc, len(exprs))
	for i, e := range exprs {
		fn, err := c.compileExpression(e)
		if err != nil {
			return nil, err
		}
		out[i] = fn
	}
	return out, nil
}

// evalAll runs fns left to right.
func evalAll(ctx *evaluator.Context, fns []evaluator.ExprFunc) ([]evaluator.Value, error) {
	out := make([]evaluator.Value, len(fns))
	for i, fn := range fns {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
