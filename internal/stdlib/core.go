package stdlib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/aurora/internal/config"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/evaluator"
)

func loadCore(r *registry) {
	r.sub(config.PrintFuncName, evaluator.Variadic, builtinPrint)
	r.fn(config.StrFuncName, 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		return str(evaluator.Display(args[0])), nil
	})
	r.fn("num", 1, builtinNum)
	r.fn("int", 1, builtinInt)
	r.fn(config.TypeOfFuncName, 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		return str(kindName(args[0])), nil
	})
	r.fn("is?", 2, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		kind, err := stringArg("is?", args, 1)
		if err != nil {
			return nil, err
		}
		return evaluator.NativeBool(kindName(args[0]) == kind), nil
	})
	r.fn(config.LenFuncName, 1, builtinLen)
	r.sub(config.AssertFuncName, evaluator.Variadic, builtinAssert)
}

// print writes its arguments separated by spaces and ends the line.
func builtinPrint(ctx *evaluator.Context, args []evaluator.Value) error {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = evaluator.Display(a)
	}
	if _, err := fmt.Fprintln(ctx.Stdout, strings.Join(parts, " ")); err != nil {
		return failure(config.PrintFuncName, err)
	}
	return nil
}

// num converts to a float. Strings that do not parse and values of other
// kinds give NaN.
func builtinNum(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	switch v := args[0].(type) {
	case *evaluator.Float:
		return v, nil
	case *evaluator.Integer:
		return float(float64(v.Value)), nil
	case *evaluator.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return float(math.NaN()), nil
		}
		return float(f), nil
	}
	return float(math.NaN()), nil
}

// int converts to an integer, truncating floats toward zero.
func builtinInt(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	switch v := args[0].(type) {
	case *evaluator.Integer:
		return v, nil
	case *evaluator.Float:
		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			return nil, failuref("int", "cannot convert %s to int", v.Inspect())
		}
		return integer(int64(v.Value)), nil
	case *evaluator.String:
		s := strings.TrimSpace(v.Value)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return integer(n), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, failuref("int", "cannot convert %s to int", v.Inspect())
		}
		return integer(int64(f)), nil
	}
	return nil, argError("int", 0, "num or str", args[0])
}

func builtinLen(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	switch v := args[0].(type) {
	case *evaluator.List:
		return integer(int64(v.Len())), nil
	case *evaluator.String:
		return integer(int64(utf8.RuneCountInString(v.Value))), nil
	case *evaluator.Map:
		return integer(int64(v.Len())), nil
	}
	return nil, argError(config.LenFuncName, 0, "array, map or str", args[0])
}

// assert(cond) or assert(cond, message).
func builtinAssert(_ *evaluator.Context, args []evaluator.Value) error {
	if len(args) < 1 || len(args) > 2 {
		return diagnostics.Errorf(diagnostics.ErrR002, config.AssertFuncName, 1, len(args))
	}
	ok, err := evaluator.Condition(args[0])
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	msg := "condition is false"
	if len(args) == 2 {
		msg = evaluator.Display(args[1])
	}
	return diagnostics.Errorf(diagnostics.ErrR008, "assertion failed: "+msg)
}
