package evaluator

// ObjectsEqual performs a deep equality check between two values.
// Integers and floats are never equal to each other; callables are equal
// only to themselves.
func ObjectsEqual(a, b Value) bool {
	return objectsEqual(a, b, nil)
}

type valuePair struct{ a, b Value }

// objectsEqual compares a and b. Container pairs already being compared
// higher up count as equal, so self-containing values terminate.
func objectsEqual(a, b Value, pending map[valuePair]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Integer:
		if bVal, ok := b.(*Integer); ok {
			return aVal.Value == bVal.Value
		}
	case *Float:
		if bVal, ok := b.(*Float); ok {
			return aVal.Value == bVal.Value
		}
	case *Boolean:
		if bVal, ok := b.(*Boolean); ok {
			return aVal.Value == bVal.Value
		}
	case *String:
		if bVal, ok := b.(*String); ok {
			return aVal.Value == bVal.Value
		}
	case *Unit:
		_, ok := b.(*Unit)
		return ok
	case *List:
		if bVal, ok := b.(*List); ok {
			if aVal.Len() != bVal.Len() {
				return false
			}
			pair := valuePair{aVal, bVal}
			if pending[pair] {
				return true
			}
			pending = markPending(pending, pair)
			defer delete(pending, pair)
			for i := range aVal.Elements {
				if !objectsEqual(aVal.Elements[i], bVal.Elements[i], pending) {
					return false
				}
			}
			return true
		}
	case *Map:
		if bVal, ok := b.(*Map); ok {
			if aVal.Len() != bVal.Len() {
				return false
			}
			pair := valuePair{aVal, bVal}
			if pending[pair] {
				return true
			}
			pending = markPending(pending, pair)
			defer delete(pending, pair)
			for i, k := range aVal.keys {
				v2, found := bVal.Get(k)
				if !found || !objectsEqual(aVal.values[i], v2, pending) {
					return false
				}
			}
			return true
		}
	}

	// callables: identity only, already checked above
	return false
}

func markPending(pending map[valuePair]bool, pair valuePair) map[valuePair]bool {
	if pending == nil {
		pending = make(map[valuePair]bool)
	}
	pending[pair] = true
	return pending
}
