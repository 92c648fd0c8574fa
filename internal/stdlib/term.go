package stdlib

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/aurora/internal/evaluator"
)

func loadTerm(r *registry) {
	r.fn("tty?", 0, func(ctx *evaluator.Context, _ []evaluator.Value) (evaluator.Value, error) {
		f, ok := ctx.Stdout.(*os.File)
		if !ok {
			return evaluator.FALSE, nil
		}
		return evaluator.NativeBool(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())), nil
	})
}
