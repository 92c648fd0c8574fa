package evaluator

import (
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

// Variadic is the arity of natives that accept any number of arguments.
const Variadic = -1

// Callable is the uniform interface of user-defined and native functions
// and subroutines.
type Callable interface {
	Value
	Name() string
	// Arity returns the parameter count and whether it is checked.
	Arity() (int, bool)
	IsSubroutine() bool
	Call(ctx *Context, args []Value) (Value, error)
}

// userBody is the compiled body shared by user functions and subroutines.
type userBody struct {
	name   string
	params []string
	frames int
	body   StmtFunc
	tok    token.Token
	id     uint32
}

func newUserBody(name string, params []string, frames int, body StmtFunc, tok token.Token) userBody {
	if frames < 2 {
		frames = 2
	}
	return userBody{name: name, params: params, frames: frames, body: body, tok: tok, id: nextIdentity()}
}

// invoke runs the body in fresh call-local frames with the parameters bound
// at depth 1 and returns whatever was left in the return slot.
func (u *userBody) invoke(ctx *Context, args []Value) (Value, token.Token, bool, error) {
	if err := ctx.pushCall(); err != nil {
		return nil, token.Token{}, false, err
	}
	defer ctx.popCall()

	saved := ctx.Enter(u.frames)
	defer ctx.Leave(saved)

	for i, p := range u.params {
		ctx.Store(1, p, args[i])
	}
	if _, err := u.body(ctx); err != nil {
		return nil, token.Token{}, false, err
	}
	v, tok, ok := ctx.TakeReturn()
	return v, tok, ok, nil
}

func (u *userBody) Name() string       { return u.name }
func (u *userBody) Arity() (int, bool) { return len(u.params), true }
func (u *userBody) Hash() uint32       { return u.id }
func (u *userBody) value()             {}

// UserFunction is a `fn` or lambda. It must finish by returning a value.
type UserFunction struct {
	userBody
}

func NewUserFunction(name string, params []string, frames int, body StmtFunc, tok token.Token) *UserFunction {
	return &UserFunction{newUserBody(name, params, frames, body, tok)}
}

func (f *UserFunction) Type() ObjectType   { return FUNCTION_OBJ }
func (f *UserFunction) Inspect() string    { return "[fn " + f.name + "]" }
func (f *UserFunction) IsSubroutine() bool { return false }

func (f *UserFunction) Call(ctx *Context, args []Value) (Value, error) {
	v, _, ok, err := f.invoke(ctx, args)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrR006, f.tok, f.name)
	}
	return v, nil
}

// UserSubroutine is a `sub` or do-block. It must not return a value.
type UserSubroutine struct {
	userBody
}

func NewUserSubroutine(name string, params []string, frames int, body StmtFunc, tok token.Token) *UserSubroutine {
	return &UserSubroutine{newUserBody(name, params, frames, body, tok)}
}

func (s *UserSubroutine) Type() ObjectType   { return SUBROUTINE_OBJ }
func (s *UserSubroutine) Inspect() string    { return "[sub " + s.name + "]" }
func (s *UserSubroutine) IsSubroutine() bool { return true }

func (s *UserSubroutine) Call(ctx *Context, args []Value) (Value, error) {
	_, tok, ok, err := s.invoke(ctx, args)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, diagnostics.NewError(diagnostics.ErrR007, tok, "subroutine "+s.name)
	}
	return UNIT, nil
}

// NativeFunction is a host function that produces a value.
type NativeFunction struct {
	FnName   string
	ArgCount int
	Fn       func(ctx *Context, args []Value) (Value, error)
	id       uint32
}

func NewNativeFunction(name string, arity int, fn func(ctx *Context, args []Value) (Value, error)) *NativeFunction {
	return &NativeFunction{FnName: name, ArgCount: arity, Fn: fn, id: nextIdentity()}
}

func (n *NativeFunction) Type() ObjectType   { return FUNCTION_OBJ }
func (n *NativeFunction) Inspect() string    { return "[native fn " + n.FnName + "]" }
func (n *NativeFunction) Hash() uint32       { return n.id }
func (n *NativeFunction) value()             {}
func (n *NativeFunction) Name() string       { return n.FnName }
func (n *NativeFunction) Arity() (int, bool) { return n.ArgCount, n.ArgCount != Variadic }
func (n *NativeFunction) IsSubroutine() bool { return false }

func (n *NativeFunction) Call(ctx *Context, args []Value) (Value, error) {
	if err := ctx.pushCall(); err != nil {
		return nil, err
	}
	defer ctx.popCall()
	v, err := n.Fn(ctx, args)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return UNIT, nil
	}
	return v, nil
}

// NativeSubroutine is a host procedure run for its effect.
type NativeSubroutine struct {
	SubName  string
	ArgCount int
	Fn       func(ctx *Context, args []Value) error
	id       uint32
}

func NewNativeSubroutine(name string, arity int, fn func(ctx *Context, args []Value) error) *NativeSubroutine {
	return &NativeSubroutine{SubName: name, ArgCount: arity, Fn: fn, id: nextIdentity()}
}

func (n *NativeSubroutine) Type() ObjectType   { return SUBROUTINE_OBJ }
func (n *NativeSubroutine) Inspect() string    { return "[native sub " + n.SubName + "]" }
func (n *NativeSubroutine) Hash() uint32       { return n.id }
func (n *NativeSubroutine) value()             {}
func (n *NativeSubroutine) Name() string       { return n.SubName }
func (n *NativeSubroutine) Arity() (int, bool) { return n.ArgCount, n.ArgCount != Variadic }
func (n *NativeSubroutine) IsSubroutine() bool { return true }

func (n *NativeSubroutine) Call(ctx *Context, args []Value) (Value, error) {
	if err := ctx.pushCall(); err != nil {
		return nil, err
	}
	defer ctx.popCall()
	if err := n.Fn(ctx, args); err != nil {
		return nil, err
	}
	return UNIT, nil
}
