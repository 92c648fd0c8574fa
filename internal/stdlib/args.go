package stdlib

import (
	"fmt"

	"github.com/funvibe/aurora/internal/config"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/evaluator"
)

// kindName is the name type_of reports for v.
func kindName(v evaluator.Value) string {
	switch c := v.(type) {
	case *evaluator.Integer, *evaluator.Float:
		return config.NumberTypeName
	case *evaluator.String:
		return config.StringTypeName
	case *evaluator.Boolean:
		return config.BoolTypeName
	case *evaluator.List:
		return config.ListTypeName
	case *evaluator.Map:
		return config.MapTypeName
	case *evaluator.Unit:
		return config.UnitTypeName
	case evaluator.Callable:
		if c.IsSubroutine() {
			return config.SubroutineTypeName
		}
		return config.FunctionTypeName
	}
	return string(v.Type())
}

func argError(name string, i int, want string, got evaluator.Value) error {
	return diagnostics.Errorf(diagnostics.ErrR001,
		fmt.Sprintf("%s: argument %d must be %s, got %s", name, i+1, want, got.Type()))
}

// failure reports a host-side failure of a native as R014.
func failure(name string, err error) error {
	return diagnostics.Errorf(diagnostics.ErrR014, fmt.Sprintf("%s: %v", name, err))
}

func failuref(name, format string, args ...interface{}) error {
	return diagnostics.Errorf(diagnostics.ErrR014, name+": "+fmt.Sprintf(format, args...))
}

func stringArg(name string, args []evaluator.Value, i int) (string, error) {
	s, ok := args[i].(*evaluator.String)
	if !ok {
		return "", argError(name, i, "str", args[i])
	}
	return s.Value, nil
}

func intArg(name string, args []evaluator.Value, i int) (int64, error) {
	n, ok := args[i].(*evaluator.Integer)
	if !ok {
		return 0, argError(name, i, "int", args[i])
	}
	return n.Value, nil
}

// numberArg accepts an int or a float and widens ints.
func numberArg(name string, args []evaluator.Value, i int) (float64, error) {
	switch n := args[i].(type) {
	case *evaluator.Float:
		return n.Value, nil
	case *evaluator.Integer:
		return float64(n.Value), nil
	}
	return 0, argError(name, i, "num", args[i])
}

func listArg(name string, args []evaluator.Value, i int) (*evaluator.List, error) {
	l, ok := args[i].(*evaluator.List)
	if !ok {
		return nil, argError(name, i, "array", args[i])
	}
	return l, nil
}

func mapArg(name string, args []evaluator.Value, i int) (*evaluator.Map, error) {
	m, ok := args[i].(*evaluator.Map)
	if !ok {
		return nil, argError(name, i, "map", args[i])
	}
	return m, nil
}

func str(s string) *evaluator.String { return &evaluator.String{Value: s} }

func integer(n int64) *evaluator.Integer { return &evaluator.Integer{Value: n} }

func float(f float64) *evaluator.Float { return &evaluator.Float{Value: f} }
