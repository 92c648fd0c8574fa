package stdlib

import (
	"strings"

	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/evaluator"
)

func loadString(r *registry) {
	r.fn("split", 2, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		s, err := stringArg("split", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := stringArg("split", args, 1)
		if err != nil {
			return nil, err
		}
		out := evaluator.NewList()
		for _, part := range strings.Split(s, sep) {
			out.Elements = append(out.Elements, str(part))
		}
		return out, nil
	})
	r.fn("replace", 3, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		var parts [3]string
		for i := range parts {
			s, err := stringArg("replace", args, i)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		return str(strings.ReplaceAll(parts[0], parts[1], parts[2])), nil
	})
	r.fn("substring", 3, builtinSubstring)
}

// substring(s, start, end) takes the characters in [start, end).
func builtinSubstring(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	s, err := stringArg("substring", args, 0)
	if err != nil {
		return nil, err
	}
	start, err := intArg("substring", args, 1)
	if err != nil {
		return nil, err
	}
	end, err := intArg("substring", args, 2)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	n := int64(len(runes))
	if start < 0 || start > n {
		return nil, diagnostics.Errorf(diagnostics.ErrR011, start, n)
	}
	if end < start || end > n {
		return nil, diagnostics.Errorf(diagnostics.ErrR011, end, n)
	}
	return str(string(runes[start:end])), nil
}
