package parser

import (
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/pipeline"
	"github.com/funvibe/aurora/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}
	if ctx.TokenStream == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "(no token stream)"))
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	ctx.AstRoot = parser.ParseProgram()
	ctx.AstRoot.File = ctx.FilePath

	return ctx
}

// IsIncomplete reports whether the errors in ctx only say that the input
// stopped early: an open block, an unclosed bracket or an unterminated
// string. The REPL keeps reading lines while this holds.
func IsIncomplete(ctx *pipeline.PipelineContext) bool {
	if !ctx.HasErrors() {
		return false
	}
	for _, err := range ctx.Errors {
		if err.Code != diagnostics.ErrL002 && err.Token.Type != token.EOF {
			return false
		}
	}
	return true
}
