package pipeline

import (
	"testing"

	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

type stage struct {
	name  string
	fail  bool
	trace *[]string
}

func (s stage) Process(ctx *PipelineContext) *PipelineContext {
	*s.trace = append(*s.trace, s.name)
	if s.fail {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{Line: 1, Column: 1}, s.name))
	}
	return ctx
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	var trace []string
	p := New(
		stage{name: "lex", trace: &trace},
		stage{name: "parse", fail: true, trace: &trace},
		stage{name: "run", trace: &trace},
	)
	ctx := NewPipelineContext("x")
	ctx.FilePath = "main.aur"
	ctx = p.Run(ctx)

	if len(trace) != 2 || trace[1] != "parse" {
		t.Errorf("expected lex and parse to run, got %v", trace)
	}
	if len(ctx.Errors) != 1 || ctx.Errors[0].File != "main.aur" {
		t.Errorf("expected one error stamped with the file, got %v", ctx.Errors)
	}
}

func TestRunAllStages(t *testing.T) {
	var trace []string
	ctx := New(stage{name: "lex", trace: &trace}, stage{name: "parse", trace: &trace}).Run(NewPipelineContext(""))
	if ctx.HasErrors() || len(trace) != 2 {
		t.Errorf("expected both stages to run cleanly, got %v %v", trace, ctx.Errors)
	}
}
