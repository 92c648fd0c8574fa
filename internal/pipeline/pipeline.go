// Package pipeline chains the stages that take Aurora source to a result:
// the lexer, the parser and, when a program is to run, the execution
// stage of a backend session. Each stage reads and extends one
// PipelineContext.
package pipeline

// Pipeline is an ordered list of stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run passes ctx through every stage and stops at the first stage that
// reports an error, so a parse failure never reaches execution.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.HasErrors() {
			break
		}
	}
	return ctx
}
