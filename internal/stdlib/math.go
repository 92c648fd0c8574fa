package stdlib

import (
	"math"

	"github.com/funvibe/aurora/internal/config"
	"github.com/funvibe/aurora/internal/evaluator"
)

var unaryMath = []struct {
	name string
	fn   func(float64) float64
}{
	{"sin", math.Sin},
	{"cos", math.Cos},
	{"tan", math.Tan},
	{"asin", math.Asin},
	{"acos", math.Acos},
	{"atan", math.Atan},
	{"sinh", math.Sinh},
	{"cosh", math.Cosh},
	{"tanh", math.Tanh},
	{"asinh", math.Asinh},
	{"acosh", math.Acosh},
	{"atanh", math.Atanh},
	{"exp", math.Exp},
	{"expm1", math.Expm1},
	{"ln", math.Log},
	{"log10", math.Log10},
	{"log2", math.Log2},
	{"sqrt", math.Sqrt},
	{"cbrt", math.Cbrt},
	{"ceil", math.Ceil},
	{"floor", math.Floor},
	{"round", math.Round},
	{"abs", math.Abs},
}

var binaryMath = []struct {
	name string
	fn   func(a, b float64) float64
}{
	{"log", func(x, base float64) float64 { return math.Log(x) / math.Log(base) }},
	{"hypot", math.Hypot},
	{"pow", math.Pow},
	{"atan2", math.Atan2},
}

// loadMath binds `math`, a map from name to native. Every function takes
// ints or floats and returns a float.
func loadMath(r *registry) {
	m := evaluator.NewMap()
	for _, u := range unaryMath {
		name, fn := u.name, u.fn
		m.SetString(name, evaluator.NewNativeFunction(name, 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
			x, err := numberArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			return float(fn(x)), nil
		}))
	}
	for _, b := range binaryMath {
		name, fn := b.name, b.fn
		m.SetString(name, evaluator.NewNativeFunction(name, 2, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
			x, err := numberArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			y, err := numberArg(name, args, 1)
			if err != nil {
				return nil, err
			}
			return float(fn(x, y)), nil
		}))
	}
	m.SetString("NaN", float(math.NaN()))
	m.SetString("pi", float(math.Pi))
	m.SetString("e", float(math.E))
	r.value(config.MathModuleName, m)
}
