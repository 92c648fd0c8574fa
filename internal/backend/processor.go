package backend

import (
	"context"

	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/pipeline"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend

	// Context bounds each run; nil means context.Background().
	Context context.Context
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || ctx.HasErrors() {
		return ctx
	}

	runCtx := p.Context
	if runCtx == nil {
		runCtx = context.Background()
	}
	if err := p.Backend.Run(runCtx, ctx.AstRoot); err != nil {
		ctx.AddError(diagnostics.AsDiagnostic(err))
	}
	return ctx
}
