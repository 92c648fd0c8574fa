package evaluator

import (
	"fmt"

	"github.com/funvibe/aurora/internal/diagnostics"
)

func listIndex(l *List, index Value) (int, error) {
	i, ok := index.(*Integer)
	if !ok {
		return 0, diagnostics.Errorf(diagnostics.ErrR001,
			fmt.Sprintf("list index must be int, got %s", index.Type()))
	}
	if i.Value < 0 || i.Value >= int64(len(l.Elements)) {
		return 0, diagnostics.Errorf(diagnostics.ErrR011, i.Value, len(l.Elements))
	}
	return int(i.Value), nil
}

// Index reads target:index. Lists take an int position, maps any key.
func Index(target, index Value) (Value, error) {
	switch t := target.(type) {
	case *List:
		i, err := listIndex(t, index)
		if err != nil {
			return nil, err
		}
		return t.Elements[i], nil
	case *Map:
		v, ok := t.Get(index)
		if !ok {
			return nil, diagnostics.Errorf(diagnostics.ErrR012, index.Inspect())
		}
		return v, nil
	}
	return nil, diagnostics.Errorf(diagnostics.ErrR004, target.Type())
}

// SetIndex writes target:index = v. List positions must exist; map keys
// are inserted when missing.
func SetIndex(target, index, v Value) error {
	switch t := target.(type) {
	case *List:
		i, err := listIndex(t, index)
		if err != nil {
			return err
		}
		t.Elements[i] = v
		return nil
	case *Map:
		t.Set(index, v)
		return nil
	}
	return diagnostics.Errorf(diagnostics.ErrR008,
		fmt.Sprintf("index assignment target of kind %s is not a list or map", target.Type()))
}

// MapOver implements coll -> fn: a new list of fn(element), or a new map
// with the same keys and fn(value).
func MapOver(ctx *Context, coll, fn Value) (Value, error) {
	switch c := coll.(type) {
	case *List:
		out := make([]Value, 0, len(c.Elements))
		for _, e := range c.Snapshot() {
			v, err := CallFunction(ctx, fn, e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return NewList(out...), nil
	case *Map:
		out := NewMap()
		keys, values := c.Keys(), c.Values()
		for i, k := range keys {
			v, err := CallFunction(ctx, fn, values[i])
			if err != nil {
				return nil, err
			}
			out.Set(k, v)
		}
		return out, nil
	}
	return nil, diagnostics.Errorf(diagnostics.ErrR005, coll.Type())
}

// Iterate returns the values a for loop visits: a snapshot of a list's
// elements, a map's keys, or a string's characters.
func Iterate(v Value) ([]Value, error) {
	switch c := v.(type) {
	case *List:
		return c.Snapshot(), nil
	case *Map:
		return c.Keys(), nil
	case *String:
		out := make([]Value, 0, len(c.Value))
		for _, r := range c.Value {
			out = append(out, &String{Value: string(r)})
		}
		return out, nil
	}
	return nil, diagnostics.Errorf(diagnostics.ErrR015, v.Type())
}
