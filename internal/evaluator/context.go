package evaluator

import (
	"bufio"
	"io"
	"os"

	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

// Signal is the outcome of a statement. Transfer stops the enclosing block;
// the Context says whether a return, break or continue caused it.
type Signal int

const (
	Normal Signal = iota
	Transfer
)

// ExprFunc is a compiled expression.
type ExprFunc func(*Context) (Value, error)

// StmtFunc is a compiled statement.
type StmtFunc func(*Context) (Signal, error)

// MaxCallDepth bounds nested calls so runaway recursion is reported instead
// of overflowing the host stack.
const MaxCallDepth = 10000

// Context is the state of one execution: the global frame, the frames of
// the running call, the pending return and the loop flags. Compiled code
// only touches state through the Context it is given, so separate Contexts
// may run on separate goroutines. A single Context is not safe for
// concurrent use.
type Context struct {
	Globals map[string]Value

	frames []map[string]Value

	returnValue Value
	returnTok   token.Token
	hasReturn   bool
	breaking    bool
	continuing  bool
	depth       int

	Stdout io.Writer
	Stdin  *bufio.Reader

	// Done, when set, is polled at loop back-edges and call entry.
	Done <-chan struct{}
}

func NewContext() *Context {
	globals := make(map[string]Value)
	return &Context{
		Globals: globals,
		frames:  []map[string]Value{globals},
		Stdout:  os.Stdout,
		Stdin:   bufio.NewReader(os.Stdin),
	}
}

// Frames is a saved frame stack returned by Enter.
type Frames []map[string]Value

// Enter installs a fresh frame stack of size n: the global frame followed
// by n-1 empty call-local frames, allocated on first write. The previous
// stack is returned for Leave.
func (c *Context) Enter(n int) Frames {
	saved := c.frames
	frames := make([]map[string]Value, n)
	frames[0] = c.Globals
	c.frames = frames
	return Frames(saved)
}

// Leave restores a frame stack saved by Enter.
func (c *Context) Leave(saved Frames) {
	c.frames = saved
}

// Lookup reads name from the frame at depth.
func (c *Context) Lookup(depth int, name string) (Value, bool) {
	frame := c.frames[depth]
	if frame == nil {
		return nil, false
	}
	v, ok := frame[name]
	return v, ok
}

// Store writes name into the frame at depth.
func (c *Context) Store(depth int, name string, v Value) {
	frame := c.frames[depth]
	if frame == nil {
		frame = make(map[string]Value)
		c.frames[depth] = frame
	}
	frame[name] = v
}

// SetReturn records the value of a `return` statement.
func (c *Context) SetReturn(v Value, tok token.Token) {
	c.returnValue = v
	c.returnTok = tok
	c.hasReturn = true
}

// TakeReturn reads and clears the pending return value.
func (c *Context) TakeReturn() (Value, token.Token, bool) {
	v, tok, ok := c.returnValue, c.returnTok, c.hasReturn
	c.returnValue = nil
	c.returnTok = token.Token{}
	c.hasReturn = false
	return v, tok, ok
}

func (c *Context) SetBreak()    { c.breaking = true }
func (c *Context) SetContinue() { c.continuing = true }

// TakeBreak reports and clears the break flag.
func (c *Context) TakeBreak() bool {
	b := c.breaking
	c.breaking = false
	return b
}

// TakeContinue reports and clears the continue flag.
func (c *Context) TakeContinue() bool {
	b := c.continuing
	c.continuing = false
	return b
}

// Reset clears the signal state and drops call-local frames. It is used
// after a run fails part way through.
func (c *Context) Reset() {
	c.frames = []map[string]Value{c.Globals}
	c.returnValue = nil
	c.returnTok = token.Token{}
	c.hasReturn = false
	c.breaking = false
	c.continuing = false
	c.depth = 0
}

// CheckInterrupt fails with ErrR016 once Done is closed.
func (c *Context) CheckInterrupt() error {
	if c.Done == nil {
		return nil
	}
	select {
	case <-c.Done:
		return diagnostics.Errorf(diagnostics.ErrR016)
	default:
		return nil
	}
}

func (c *Context) pushCall() error {
	if err := c.CheckInterrupt(); err != nil {
		return err
	}
	if c.depth >= MaxCallDepth {
		return diagnostics.Errorf(diagnostics.ErrR017, MaxCallDepth)
	}
	c.depth++
	return nil
}

func (c *Context) popCall() {
	c.depth--
}
