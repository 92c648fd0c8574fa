package evaluator

// List is an ordered, mutable sequence. Lists have reference semantics:
// every name bound to a list sees its mutations.
type List struct {
	Elements []Value
}

func NewList(elements ...Value) *List {
	if elements == nil {
		elements = []Value{}
	}
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string  { return inspect(l, nil) }
func (l *List) Hash() uint32 {
	var h uint32 = 17
	for _, e := range l.Elements {
		h = h*31 + elementHash(e)
	}
	return h
}
func (l *List) value() {}

// elementHash hashes a container element. Nested containers contribute
// only their kind and length, so hashing never follows a cycle and values
// that compare equal hash alike.
func elementHash(v Value) uint32 {
	switch val := v.(type) {
	case *List:
		return 17*31 + uint32(len(val.Elements))
	case *Map:
		return 19*31 + uint32(len(val.keys))
	}
	return v.Hash()
}

func (l *List) Len() int { return len(l.Elements) }

// Snapshot returns a copy of the elements, safe to range over while the
// list is mutated.
func (l *List) Snapshot() []Value {
	out := make([]Value, len(l.Elements))
	copy(out, l.Elements)
	return out
}

// Map associates keys with values. Keys compare by value equality and
// iterate in insertion order.
type Map struct {
	keys   []Value
	values []Value
	index  map[uint32][]int // key hash -> positions in keys
}

func NewMap() *Map {
	return &Map{index: make(map[uint32][]int)}
}

func (m *Map) Type() ObjectType { return MAP_OBJ }
func (m *Map) Inspect() string  { return inspect(m, nil) }
func (m *Map) Hash() uint32 {
	// order independent, so equal maps hash alike
	var h uint32
	for i, k := range m.keys {
		h += elementHash(k)*31 + elementHash(m.values[i])
	}
	return h
}
func (m *Map) value() {}

func (m *Map) Len() int { return len(m.keys) }

func (m *Map) find(key Value) int {
	for _, pos := range m.index[key.Hash()] {
		if ObjectsEqual(m.keys[pos], key) {
			return pos
		}
	}
	return -1
}

func (m *Map) Get(key Value) (Value, bool) {
	if pos := m.find(key); pos >= 0 {
		return m.values[pos], true
	}
	return nil, false
}

func (m *Map) Has(key Value) bool {
	return m.find(key) >= 0
}

// Set inserts or replaces the value under key. A replaced key keeps its
// original position.
func (m *Map) Set(key, value Value) {
	if pos := m.find(key); pos >= 0 {
		m.values[pos] = value
		return
	}
	h := key.Hash()
	m.index[h] = append(m.index[h], len(m.keys))
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// SetString is Set with a string key.
func (m *Map) SetString(key string, value Value) {
	m.Set(&String{Value: key}, value)
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key Value) bool {
	pos := m.find(key)
	if pos < 0 {
		return false
	}
	m.keys = append(m.keys[:pos], m.keys[pos+1:]...)
	m.values = append(m.values[:pos], m.values[pos+1:]...)
	m.reindex()
	return true
}

func (m *Map) reindex() {
	m.index = make(map[uint32][]int, len(m.keys))
	for i, k := range m.keys {
		h := k.Hash()
		m.index[h] = append(m.index[h], i)
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Value {
	out := make([]Value, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key insertion order.
func (m *Map) Values() []Value {
	out := make([]Value, len(m.values))
	copy(out, m.values)
	return out
}
