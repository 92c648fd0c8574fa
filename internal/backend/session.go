package backend

import (
	"bufio"
	"context"
	"io"

	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/compiler"
	"github.com/funvibe/aurora/internal/evaluator"
)

// Session is a compiler and an execution context that share one global
// frame. A Session must not be used from two goroutines at once; separate
// Sessions are independent.
type Session struct {
	globals  map[string]bool
	compiler *compiler.Compiler
	ctx      *evaluator.Context
}

func NewSession() *Session {
	globals := make(map[string]bool)
	return &Session{
		globals:  globals,
		compiler: compiler.New(globals),
		ctx:      evaluator.NewContext(),
	}
}

func (s *Session) Name() string { return "closure" }

// SetOutput redirects what print and ask write.
func (s *Session) SetOutput(w io.Writer) { s.ctx.Stdout = w }

// SetInput replaces the reader ask reads from.
func (s *Session) SetInput(r io.Reader) { s.ctx.Stdin = bufio.NewReader(r) }

// DeclareGlobal makes name visible to later compiles and binds it in the
// global frame.
func (s *Session) DeclareGlobal(name string, v evaluator.Value) {
	s.globals[name] = true
	s.ctx.Globals[name] = v
}

// Global reads a binding from the global frame.
func (s *Session) Global(name string) (evaluator.Value, bool) {
	v, ok := s.ctx.Globals[name]
	return v, ok
}

// Compile compiles program against the session's globals. A failed
// compile leaves the global name set as it was.
func (s *Session) Compile(program *ast.Program) (*compiler.Unit, error) {
	return s.compiler.Compile(program)
}

// Exec runs a compiled unit. Cancelling ctx interrupts it at the next loop
// iteration or call. After a failure the call-local state is discarded and
// the globals written so far are kept.
func (s *Session) Exec(ctx context.Context, unit *compiler.Unit) error {
	s.ctx.Done = ctx.Done()
	defer func() { s.ctx.Done = nil }()
	if err := unit.Run(s.ctx); err != nil {
		s.ctx.Reset()
		return err
	}
	return nil
}

// Run compiles and executes program.
func (s *Session) Run(ctx context.Context, program *ast.Program) error {
	unit, err := s.Compile(program)
	if err != nil {
		return err
	}
	return s.Exec(ctx, unit)
}
