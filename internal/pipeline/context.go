package pipeline

import (
	"github.com/funvibe/aurora/internal/ast"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the artefacts of one run through the stages.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream []token.Token
	AstRoot     *ast.Program
	Errors      []*diagnostics.DiagnosticError

	// Result is the value left by the execution stage, if any.
	Result interface{}
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{SourceCode: sourceCode}
}

// AddError records err and stamps it with the context's file path.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// HasErrors reports whether any stage has failed.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
