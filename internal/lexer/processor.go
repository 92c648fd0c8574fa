package lexer

import (
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/pipeline"
	"github.com/funvibe/aurora/internal/token"
)

type LexerProcessor struct{}

// Process tokenizes ctx.SourceCode. The first illegal token stops the run.
func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens := New(ctx.SourceCode).Tokenize()
	for _, tok := range tokens {
		if tok.Type != token.ILLEGAL {
			continue
		}
		if msg, ok := tok.Literal.(string); ok && msg == unterminatedString {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrL002, tok))
		} else {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrL001, tok, tok.Lexeme))
		}
		return ctx
	}
	ctx.TokenStream = tokens
	return ctx
}
