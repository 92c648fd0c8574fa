package evaluator

import (
	"math"
	"strconv"
)

// Boolean
type Boolean struct {
	Value bool
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// NativeBool returns the shared Boolean for b.
func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}
func (b *Boolean) value() {}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Hash() uint32 {
	return uint32(i.Value ^ (i.Value >> 32))
}
func (i *Integer) value() {}

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return formatFloat(f.Value) }
func (f *Float) Hash() uint32 {
	v := f.Value
	if v == 0 {
		// -0.0 == 0.0
		v = 0
	}
	bits := math.Float64bits(v)
	return uint32(bits ^ (bits >> 32))
}
func (f *Float) value() {}

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return quoteString(s.Value) }
func (s *String) Hash() uint32     { return hashString(s.Value) }
func (s *String) value()           {}

// Unit is the absence of a value. UNIT is its only instance.
type Unit struct{}

var UNIT = &Unit{}

func (u *Unit) Type() ObjectType { return UNIT_OBJ }
func (u *Unit) Inspect() string  { return "unit" }
func (u *Unit) Hash() uint32     { return 0 }
func (u *Unit) value()           {}
