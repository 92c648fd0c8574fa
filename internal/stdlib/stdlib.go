// Package stdlib binds the native functions and subroutines into a
// session's global frame before any user code compiles.
package stdlib

import (
	"github.com/funvibe/aurora/internal/config"
	"github.com/funvibe/aurora/internal/evaluator"
)

// Declarer receives global bindings. backend.Session implements it.
type Declarer interface {
	DeclareGlobal(name string, v evaluator.Value)
}

// Options selects what Load binds.
type Options struct {
	// Disabled holds the names of groups to skip (see config.AllGroups).
	Disabled map[string]bool
}

type loader func(r *registry)

var groups = map[string]loader{
	config.GroupCore:    loadCore,
	config.GroupList:    loadList,
	config.GroupString:  loadString,
	config.GroupMath:    loadMath,
	config.GroupTime:    loadTime,
	config.GroupIO:      loadIO,
	config.GroupFile:    loadFile,
	config.GroupProcess: loadProcess,
	config.GroupUUID:    loadUUID,
	config.GroupYAML:    loadYAML,
	config.GroupSQL:     loadSQL,
	config.GroupTerm:    loadTerm,
}

// Load declares every native of the enabled groups, in config.AllGroups
// order.
func Load(d Declarer, opts Options) {
	r := &registry{d: d}
	for _, name := range config.AllGroups {
		if opts.Disabled[name] {
			continue
		}
		groups[name](r)
	}
}

// Names returns the global names the enabled groups would declare.
func Names(opts Options) []string {
	c := &collector{}
	Load(c, opts)
	return c.names
}

type collector struct{ names []string }

func (c *collector) DeclareGlobal(name string, _ evaluator.Value) {
	c.names = append(c.names, name)
}

type registry struct {
	d Declarer
}

func (r *registry) fn(name string, arity int, f func(ctx *evaluator.Context, args []evaluator.Value) (evaluator.Value, error)) {
	r.d.DeclareGlobal(name, evaluator.NewNativeFunction(name, arity, f))
}

func (r *registry) sub(name string, arity int, f func(ctx *evaluator.Context, args []evaluator.Value) error) {
	r.d.DeclareGlobal(name, evaluator.NewNativeSubroutine(name, arity, f))
}

func (r *registry) value(name string, v evaluator.Value) {
	r.d.DeclareGlobal(name, v)
}
