package compiler

// scope tracks the names visible while compiling one function-like body.
// frames[0] is the shared global name set; frames[1] holds parameters.
type scope struct {
	frames []map[string]bool
	// pushes counts every frame entered while compiling the body and is
	// never decremented. The runtime frame array has 1+pushes slots.
	pushes int
	loops  int
}

func newScope(globals map[string]bool) *scope {
	return &scope{frames: []map[string]bool{globals}}
}

func (s *scope) depth() int {
	return len(s.frames) - 1
}

func (s *scope) push() {
	s.frames = append(s.frames, make(map[string]bool))
	s.pushes++
}

func (s *scope) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// resolve returns the depth of the innermost frame that declares name.
func (s *scope) resolve(name string) (int, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i][name] {
			return i, true
		}
	}
	return 0, false
}

// frameCount is the size of the runtime frame array for this body.
func (s *scope) frameCount() int {
	return 1 + s.pushes
}

// declare adds name to the innermost frame and returns that frame's depth.
func (c *Compiler) declare(name string) int {
	d := c.scope.depth()
	if d == 0 {
		c.declareGlobal(name)
		return 0
	}
	c.scope.frames[d][name] = true
	return d
}

func (c *Compiler) declareGlobal(name string) {
	if c.globals[name] {
		return
	}
	c.globals[name] = true
	c.added = append(c.added, name)
}

// rollback forgets the global names declared by a compile that failed.
func (c *Compiler) rollback() {
	for _, name := range c.added {
		delete(c.globals, name)
	}
	c.added = nil
}

// scoped compiles fn inside a freshly pushed frame.
func (c *Compiler) scoped(fn func() error) error {
	c.scope.push()
	defer c.scope.pop()
	return fn()
}
