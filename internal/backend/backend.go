// Package backend runs parsed programs. A Session keeps the global frame
// and the global name set alive across runs, which is what the REPL needs.
package backend

import (
	"context"

	"github.com/funvibe/aurora/internal/ast"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run compiles and executes program.
	Run(ctx context.Context, program *ast.Program) error

	// Name returns the backend name for display
	Name() string
}
