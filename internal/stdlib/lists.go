package stdlib

import (
	"strings"

	"github.com/funvibe/aurora/internal/evaluator"
)

func loadList(r *registry) {
	r.sub("push", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		l, err := listArg("push", args, 0)
		if err != nil {
			return err
		}
		l.Elements = append(l.Elements, args[1])
		return nil
	})
	r.fn("pop", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		l, err := listArg("pop", args, 0)
		if err != nil {
			return nil, err
		}
		if l.Len() == 0 {
			return nil, failuref("pop", "list is empty")
		}
		last := l.Elements[l.Len()-1]
		l.Elements = l.Elements[:l.Len()-1]
		return last, nil
	})
	r.fn("shift", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		l, err := listArg("shift", args, 0)
		if err != nil {
			return nil, err
		}
		if l.Len() == 0 {
			return nil, failuref("shift", "list is empty")
		}
		first := l.Elements[0]
		l.Elements = append(l.Elements[:0:0], l.Elements[1:]...)
		return first, nil
	})
	r.sub("unshift", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		l, err := listArg("unshift", args, 0)
		if err != nil {
			return err
		}
		l.Elements = append([]evaluator.Value{args[1]}, l.Elements...)
		return nil
	})
	r.fn("join", 2, builtinJoin)
	r.fn("upTo", 2, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		return intRange("upTo", args, 1)
	})
	r.fn("downTo", 2, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		return intRange("downTo", args, -1)
	})
	r.fn("times", 1, builtinTimes)
	r.fn("map", 2, builtinMap)
	r.sub("map!", 2, builtinMapInPlace)
	r.fn("filter", 2, builtinFilter)
	r.sub("filter!", 2, builtinFilterInPlace)
	r.fn("reduce", 3, builtinReduce)
	r.fn("keys", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		m, err := mapArg("keys", args, 0)
		if err != nil {
			return nil, err
		}
		return evaluator.NewList(m.Keys()...), nil
	})
	r.fn("values", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		m, err := mapArg("values", args, 0)
		if err != nil {
			return nil, err
		}
		return evaluator.NewList(m.Values()...), nil
	})
	r.fn("has?", 2, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		m, err := mapArg("has?", args, 0)
		if err != nil {
			return nil, err
		}
		return evaluator.NativeBool(m.Has(args[1])), nil
	})
	r.sub("remove!", 2, func(_ *evaluator.Context, args []evaluator.Value) error {
		m, err := mapArg("remove!", args, 0)
		if err != nil {
			return err
		}
		m.Delete(args[1])
		return nil
	})
}

func builtinJoin(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("join", args, 0)
	if err != nil {
		return nil, err
	}
	sep, err := stringArg("join", args, 1)
	if err != nil {
		return nil, err
	}
	parts := make([]string, l.Len())
	for i, e := range l.Elements {
		parts[i] = evaluator.Display(e)
	}
	return str(strings.Join(parts, sep)), nil
}

// intRange lists the integers from args[0] to args[1] inclusive, stepping
// by step. An empty list comes back when the bounds run the other way.
func intRange(name string, args []evaluator.Value, step int64) (evaluator.Value, error) {
	from, err := intArg(name, args, 0)
	if err != nil {
		return nil, err
	}
	to, err := intArg(name, args, 1)
	if err != nil {
		return nil, err
	}
	out := evaluator.NewList()
	if (step > 0 && from > to) || (step < 0 && from < to) {
		return out, nil
	}
	for i := from; ; i += step {
		out.Elements = append(out.Elements, integer(i))
		// stop before stepping past to, which could overflow
		if i == to {
			break
		}
	}
	return out, nil
}

// times(n) returns a subroutine that calls its callback with 0..n-1.
func builtinTimes(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	n, err := intArg("times", args, 0)
	if err != nil {
		return nil, err
	}
	return evaluator.NewNativeSubroutine("times", 1, func(ctx *evaluator.Context, cb []evaluator.Value) error {
		for i := int64(0); i < n; i++ {
			if err := ctx.CheckInterrupt(); err != nil {
				return err
			}
			if _, err := evaluator.Apply(ctx, cb[0], []evaluator.Value{integer(i)}, false); err != nil {
				return err
			}
		}
		return nil
	}), nil
}

func builtinMap(ctx *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	if _, err := listArg("map", args, 0); err != nil {
		return nil, err
	}
	return evaluator.MapOver(ctx, args[0], args[1])
}

func builtinMapInPlace(ctx *evaluator.Context, args []evaluator.Value) error {
	l, err := listArg("map!", args, 0)
	if err != nil {
		return err
	}
	for i, e := range l.Snapshot() {
		v, err := evaluator.CallFunction(ctx, args[1], e)
		if err != nil {
			return err
		}
		if i < l.Len() {
			l.Elements[i] = v
		}
	}
	return nil
}

// keep runs pred over a snapshot of l and returns the elements it accepted.
func keep(ctx *evaluator.Context, l *evaluator.List, pred evaluator.Value) ([]evaluator.Value, error) {
	var out []evaluator.Value
	for _, e := range l.Snapshot() {
		v, err := evaluator.CallFunction(ctx, pred, e)
		if err != nil {
			return nil, err
		}
		ok, err := evaluator.Condition(v)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func builtinFilter(ctx *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("filter", args, 0)
	if err != nil {
		return nil, err
	}
	kept, err := keep(ctx, l, args[1])
	if err != nil {
		return nil, err
	}
	return evaluator.NewList(kept...), nil
}

func builtinFilterInPlace(ctx *evaluator.Context, args []evaluator.Value) error {
	l, err := listArg("filter!", args, 0)
	if err != nil {
		return err
	}
	kept, err := keep(ctx, l, args[1])
	if err != nil {
		return err
	}
	l.Elements = kept
	return nil
}

// reduce(list, initial, fn) folds fn(acc, element) from the left.
func builtinReduce(ctx *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("reduce", args, 0)
	if err != nil {
		return nil, err
	}
	acc := args[1]
	for _, e := range l.Snapshot() {
		if acc, err = evaluator.CallFunction(ctx, args[2], acc, e); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
