package stdlib

import (
	"bytes"
	"errors"
	"os/exec"

	"github.com/funvibe/aurora/internal/evaluator"
)

func loadProcess(r *registry) {
	r.fn("execute", evaluator.Variadic, builtinExecute)
}

// execute(command, args...) runs a program to completion and returns
// {"status": int, "output": str, "errors": str}. A program that cannot be
// started is a native failure; a non-zero exit is reported in status.
func builtinExecute(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	if len(args) == 0 {
		return nil, failuref("execute", "missing command")
	}
	argv := make([]string, len(args))
	for i := range args {
		s, err := stringArg("execute", args, i)
		if err != nil {
			return nil, err
		}
		argv[i] = s
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	status := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, failure("execute", err)
		}
		status = exitErr.ExitCode()
	}

	m := evaluator.NewMap()
	m.SetString("status", integer(int64(status)))
	m.SetString("output", str(stdout.String()))
	m.SetString("errors", str(stderr.String()))
	return m, nil
}
