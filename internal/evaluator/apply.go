package evaluator

import "github.com/funvibe/aurora/internal/diagnostics"

// Apply calls callee with args. wantValue is set when the call sits where a
// value is required, which subroutines cannot provide. Errors raised by the
// callee are returned unchanged.
func Apply(ctx *Context, callee Value, args []Value, wantValue bool) (Value, error) {
	fn, ok := callee.(Callable)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrR010, callee.Type())
	}
	if wantValue && fn.IsSubroutine() {
		return nil, diagnostics.Errorf(diagnostics.ErrR003, fn.Name())
	}
	if n, fixed := fn.Arity(); fixed && n != len(args) {
		return nil, diagnostics.Errorf(diagnostics.ErrR002, fn.Name(), n, len(args))
	}
	return fn.Call(ctx, args)
}

// CallFunction applies a value-producing callable, as natives such as map
// and filter do with their callback.
func CallFunction(ctx *Context, callee Value, args ...Value) (Value, error) {
	return Apply(ctx, callee, args, true)
}
