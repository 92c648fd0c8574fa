package evaluator

import (
	"errors"
	"math"
	"testing"

	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/token"
)

func i(n int64) *Integer     { return &Integer{Value: n} }
func f(x float64) *Float     { return &Float{Value: x} }
func s(v string) *String     { return &String{Value: v} }
func b(v bool) *Boolean      { return NativeBool(v) }
func list(vs ...Value) *List { return NewList(vs...) }

func testIntegerObject(t *testing.T, obj Value, expected int64) bool {
	t.Helper()
	result, ok := obj.(*Integer)
	if !ok {
		t.Errorf("object is not Integer. got=%T (%+v)", obj, obj)
		return false
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%d, want=%d", result.Value, expected)
		return false
	}
	return true
}

func testFloatObject(t *testing.T, obj Value, expected float64) bool {
	t.Helper()
	result, ok := obj.(*Float)
	if !ok {
		t.Errorf("object is not Float. got=%T (%+v)", obj, obj)
		return false
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%g, want=%g", result.Value, expected)
		return false
	}
	return true
}

func testBooleanObject(t *testing.T, obj Value, expected bool) bool {
	t.Helper()
	result, ok := obj.(*Boolean)
	if !ok {
		t.Errorf("object is not Boolean. got=%T (%+v)", obj, obj)
		return false
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%t, want=%t", result.Value, expected)
		return false
	}
	return true
}

func testErrorCode(t *testing.T, err error, code diagnostics.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got none", code)
	}
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("expected a diagnostic, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Errorf("expected %s, got %s (%s)", code, de.Code, de.Message)
	}
}

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		op       token.TokenType
		a, b     int64
		expected int64
	}{
		{token.PLUS, 2, 3, 5},
		{token.MINUS, 2, 3, -1},
		{token.ASTERISK, 4, 3, 12},
		{token.SLASH, 7, 2, 3},
		{token.SLASH, -7, 2, -3},
		{token.PERCENT, 7, 3, 1},
		{token.PERCENT, -7, 3, -1},
	}
	for _, tt := range tests {
		v, err := BinaryOp(tt.op, i(tt.a), i(tt.b))
		if err != nil {
			t.Fatalf("%d %s %d: %v", tt.a, tt.op, tt.b, err)
		}
		testIntegerObject(t, v, tt.expected)
	}
}

func TestFloatArithmetic(t *testing.T) {
	tests := []struct {
		op       token.TokenType
		a, b     float64
		expected float64
	}{
		{token.PLUS, 1.5, 2.25, 3.75},
		{token.MINUS, 1.5, 2, -0.5},
		{token.ASTERISK, 1.5, 2, 3},
		{token.SLASH, 7, 2, 3.5},
		{token.PERCENT, 7.5, 2, 1.5},
	}
	for _, tt := range tests {
		v, err := BinaryOp(tt.op, f(tt.a), f(tt.b))
		if err != nil {
			t.Fatalf("%g %s %g: %v", tt.a, tt.op, tt.b, err)
		}
		testFloatObject(t, v, tt.expected)
	}

	v, err := BinaryOp(token.SLASH, f(1), f(0))
	if err != nil {
		t.Fatalf("float division by zero should not fail: %v", err)
	}
	if !math.IsInf(v.(*Float).Value, 1) {
		t.Errorf("expected +Inf, got %s", v.Inspect())
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := BinaryOp(token.SLASH, i(1), i(0))
	testErrorCode(t, err, diagnostics.ErrR013)
	_, err = BinaryOp(token.PERCENT, i(1), i(0))
	testErrorCode(t, err, diagnostics.ErrR013)
}

func TestMixedNumbersAreTypeErrors(t *testing.T) {
	_, err := BinaryOp(token.PLUS, i(1), f(2))
	testErrorCode(t, err, diagnostics.ErrR001)
	if err.Error() != "error [R001]: invalid operand types for +: int and float" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	_, err = BinaryOp(token.LT, f(1), i(2))
	testErrorCode(t, err, diagnostics.ErrR001)
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		op       token.TokenType
		a, b     Value
		expected bool
	}{
		{token.LT, i(1), i(2), true},
		{token.GTE, i(2), i(2), true},
		{token.GT, f(1.5), f(2.5), false},
		{token.LTE, f(2.5), f(2.5), true},
		{token.LT, s("abc"), s("abd"), true},
		{token.GT, s("b"), s("abc"), true},
		{token.EQ, i(1), i(1), true},
		{token.EQ, i(1), f(1), false},
		{token.NOT_EQ, i(1), f(1), true},
		{token.EQ, s("a"), s("a"), true},
		{token.EQ, UNIT, UNIT, true},
		{token.EQ, list(i(1), s("x")), list(i(1), s("x")), true},
		{token.EQ, list(i(1)), list(i(1), i(2)), false},
		{token.NOT_EQ, b(true), b(false), true},
	}
	for _, tt := range tests {
		v, err := BinaryOp(tt.op, tt.a, tt.b)
		if err != nil {
			t.Fatalf("%s %s %s: %v", tt.a.Inspect(), tt.op, tt.b.Inspect(), err)
		}
		testBooleanObject(t, v, tt.expected)
	}
}

func TestStringConcatenation(t *testing.T) {
	tests := []struct {
		right    Value
		expected string
	}{
		{s("b"), "ab"},
		{i(1), "a1"},
		{f(2), "a2.0"},
		{b(true), "atrue"},
		{list(i(1), s("x")), `a[1, "x"]`},
		{UNIT, "aunit"},
	}
	for _, tt := range tests {
		v, err := BinaryOp(token.PLUS, s("a"), tt.right)
		if err != nil {
			t.Fatalf("concatenating %s: %v", tt.right.Inspect(), err)
		}
		if got := v.(*String).Value; got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}

	_, err := BinaryOp(token.PLUS, i(1), s("a"))
	testErrorCode(t, err, diagnostics.ErrR001)
	_, err = BinaryOp(token.MINUS, s("a"), s("b"))
	testErrorCode(t, err, diagnostics.ErrR001)
}

func TestUnaryOp(t *testing.T) {
	v, err := UnaryOp(token.MINUS, f(2.5))
	if err != nil {
		t.Fatal(err)
	}
	testFloatObject(t, v, -2.5)

	v, err = UnaryOp(token.NOT, b(false))
	if err != nil {
		t.Fatal(err)
	}
	testBooleanObject(t, v, true)

	_, err = UnaryOp(token.NOT, i(1))
	testErrorCode(t, err, diagnostics.ErrR001)
}

func TestCondition(t *testing.T) {
	ok, err := Condition(b(true))
	if err != nil || !ok {
		t.Errorf("expected true, got %v %v", ok, err)
	}
	_, err = Condition(i(1))
	testErrorCode(t, err, diagnostics.ErrR001)
}

func TestInspect(t *testing.T) {
	m := NewMap()
	m.SetString("b", i(1))
	m.Set(i(2), list(s("q\"uote")))

	tests := []struct {
		value    Value
		expected string
	}{
		{i(-3), "-3"},
		{f(2), "2.0"},
		{f(0.1), "0.1"},
		{f(1e21), "1e+21"},
		{f(math.NaN()), "NaN"},
		{f(math.Inf(-1)), "-Infinity"},
		{s("a\nb"), `"a\nb"`},
		{b(false), "false"},
		{UNIT, "unit"},
		{list(), "[]"},
		{m, `{"b": 1, 2: ["q\"uote"]}`},
	}
	for _, tt := range tests {
		if got := tt.value.Inspect(); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}

	if got := Display(s("plain")); got != "plain" {
		t.Errorf("Display should not quote strings, got %s", got)
	}
}

func TestSelfContainingList(t *testing.T) {
	l := list(i(1))
	l.Elements = append(l.Elements, l)
	if got := l.Inspect(); got != "[1, [...]]" {
		t.Errorf("unexpected rendering: %s", got)
	}

	// a = []; push a, a; b = []; push b, b
	a := list()
	a.Elements = append(a.Elements, a, a)
	b := list()
	b.Elements = append(b.Elements, b, b)
	if got := a.Inspect(); got != "[[...], [...]]" {
		t.Errorf("unexpected rendering: %s", got)
	}
	if !ObjectsEqual(a, b) {
		t.Errorf("lists with the same shape should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal lists should hash alike")
	}
	if ObjectsEqual(a, l) {
		t.Errorf("lists of different shape compared equal")
	}

	m := NewMap()
	m.Set(a, i(1))
	m.Set(b, i(2))
	if m.Len() != 1 {
		t.Errorf("equal self-containing keys should share an entry, got %d", m.Len())
	}
	self := NewMap()
	self.SetString("me", self)
	if !ObjectsEqual(self, self) || self.Inspect() != `{"me": {...}}` {
		t.Errorf("unexpected self-containing map %s", self.Inspect())
	}
	other := NewMap()
	other.SetString("me", other)
	if !ObjectsEqual(self, other) || self.Hash() != other.Hash() {
		t.Errorf("maps with the same shape should be equal and hash alike")
	}
}

func TestNegativeZeroKey(t *testing.T) {
	negZero := f(math.Copysign(0, -1))
	if !ObjectsEqual(f(0), negZero) {
		t.Fatalf("0.0 and -0.0 should be equal")
	}
	if f(0).Hash() != negZero.Hash() {
		t.Errorf("0.0 and -0.0 should hash alike")
	}
	m := NewMap()
	m.Set(f(0), i(1))
	m.Set(negZero, i(2))
	if m.Len() != 1 {
		t.Fatalf("expected one key, got %d", m.Len())
	}
	v, _ := m.Get(f(0))
	testIntegerObject(t, v, 2)
}

func TestMapOrderAndEquality(t *testing.T) {
	m := NewMap()
	m.SetString("z", i(1))
	m.SetString("a", i(2))
	m.Set(i(1), i(3))
	m.Set(f(1), i(4))
	m.SetString("z", i(5))

	keys := m.Keys()
	if len(keys) != 4 {
		t.Fatalf("expected 4 keys, got %d", len(keys))
	}
	want := []string{`"z"`, `"a"`, "1", "1.0"}
	for idx, k := range keys {
		if k.Inspect() != want[idx] {
			t.Errorf("key %d: expected %s, got %s", idx, want[idx], k.Inspect())
		}
	}
	v, _ := m.Get(s("z"))
	testIntegerObject(t, v, 5)

	if !m.Delete(s("a")) || m.Has(s("a")) {
		t.Errorf("delete failed")
	}
	if v, ok := m.Get(f(1)); !ok || !testIntegerObject(t, v, 4) {
		t.Errorf("lookup after delete failed")
	}

	other := NewMap()
	other.Set(f(1), i(4))
	other.Set(i(1), i(3))
	other.SetString("z", i(5))
	if !ObjectsEqual(m, other) {
		t.Errorf("maps with the same entries in another order should be equal")
	}
	if m.Hash() != other.Hash() {
		t.Errorf("equal maps should hash alike")
	}
}

func TestCallablesCompareByIdentity(t *testing.T) {
	body := func(ctx *Context, args []Value) (Value, error) { return UNIT, nil }
	a := NewNativeFunction("a", 0, body)
	c := NewNativeFunction("a", 0, body)
	if !ObjectsEqual(a, a) {
		t.Errorf("a callable should equal itself")
	}
	if ObjectsEqual(a, c) {
		t.Errorf("distinct callables should not be equal")
	}
}

func TestIndex(t *testing.T) {
	l := list(i(10), i(20))
	v, err := Index(l, i(1))
	if err != nil {
		t.Fatal(err)
	}
	testIntegerObject(t, v, 20)

	_, err = Index(l, i(2))
	testErrorCode(t, err, diagnostics.ErrR011)
	if err.Error() != "error [R011]: index 2 out of range for list of length 2" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	_, err = Index(l, i(-1))
	testErrorCode(t, err, diagnostics.ErrR011)
	_, err = Index(l, f(0))
	testErrorCode(t, err, diagnostics.ErrR001)

	m := NewMap()
	m.SetString("k", i(1))
	v, err = Index(m, s("k"))
	if err != nil {
		t.Fatal(err)
	}
	testIntegerObject(t, v, 1)
	_, err = Index(m, s("missing"))
	testErrorCode(t, err, diagnostics.ErrR012)

	_, err = Index(s("abc"), i(0))
	testErrorCode(t, err, diagnostics.ErrR004)
}

func TestSetIndex(t *testing.T) {
	l := list(i(1))
	if err := SetIndex(l, i(0), s("x")); err != nil {
		t.Fatal(err)
	}
	if l.Elements[0].Inspect() != `"x"` {
		t.Errorf("list not updated: %s", l.Inspect())
	}
	testErrorCode(t, SetIndex(l, i(1), i(0)), diagnostics.ErrR011)

	m := NewMap()
	if err := SetIndex(m, s("new"), i(1)); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 {
		t.Errorf("expected key to be inserted")
	}

	testErrorCode(t, SetIndex(i(1), i(0), i(0)), diagnostics.ErrR008)
}

func TestMapOver(t *testing.T) {
	ctx := NewContext()
	double := NewNativeFunction("double", 1, func(_ *Context, args []Value) (Value, error) {
		return i(args[0].(*Integer).Value * 2), nil
	})

	v, err := MapOver(ctx, list(i(1), i(2), i(3)), double)
	if err != nil {
		t.Fatal(err)
	}
	if v.Inspect() != "[2, 4, 6]" {
		t.Errorf("expected [2, 4, 6], got %s", v.Inspect())
	}

	m := NewMap()
	m.SetString("a", i(1))
	m.SetString("b", i(5))
	v, err = MapOver(ctx, m, double)
	if err != nil {
		t.Fatal(err)
	}
	if v.Inspect() != `{"a": 2, "b": 10}` {
		t.Errorf("unexpected map result %s", v.Inspect())
	}

	_, err = MapOver(ctx, i(3), double)
	testErrorCode(t, err, diagnostics.ErrR005)

	_, err = MapOver(ctx, list(i(1)), i(3))
	testErrorCode(t, err, diagnostics.ErrR010)

	sub := NewNativeSubroutine("s", 1, func(_ *Context, _ []Value) error { return nil })
	_, err = MapOver(ctx, list(i(1)), sub)
	testErrorCode(t, err, diagnostics.ErrR003)
}

func TestIterate(t *testing.T) {
	vs, err := Iterate(s("hé"))
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 2 || vs[1].(*String).Value != "é" {
		t.Errorf("expected two characters, got %v", vs)
	}

	_, err = Iterate(i(1))
	testErrorCode(t, err, diagnostics.ErrR015)
}

func TestApply(t *testing.T) {
	ctx := NewContext()
	fn := NewNativeFunction("two", 2, func(_ *Context, args []Value) (Value, error) {
		return nil, nil
	})

	v, err := Apply(ctx, fn, []Value{i(1), i(2)}, true)
	if err != nil {
		t.Fatal(err)
	}
	if v != UNIT {
		t.Errorf("a nil native result should become unit")
	}

	_, err = Apply(ctx, fn, []Value{i(1)}, true)
	testErrorCode(t, err, diagnostics.ErrR002)

	_, err = Apply(ctx, s("x"), nil, true)
	testErrorCode(t, err, diagnostics.ErrR010)

	variadic := NewNativeFunction("any", Variadic, func(_ *Context, args []Value) (Value, error) {
		return i(int64(len(args))), nil
	})
	v, err = Apply(ctx, variadic, []Value{i(1), i(2), i(3)}, true)
	if err != nil {
		t.Fatal(err)
	}
	testIntegerObject(t, v, 3)
}

func TestCallDepthLimit(t *testing.T) {
	ctx := NewContext()
	var deep *NativeFunction
	deep = NewNativeFunction("deep", 0, func(ctx *Context, _ []Value) (Value, error) {
		return CallFunction(ctx, deep)
	})
	_, err := CallFunction(ctx, deep)
	testErrorCode(t, err, diagnostics.ErrR017)
}

func TestInterrupt(t *testing.T) {
	ctx := NewContext()
	if err := ctx.CheckInterrupt(); err != nil {
		t.Fatalf("no Done channel should never interrupt: %v", err)
	}
	done := make(chan struct{})
	ctx.Done = done
	if err := ctx.CheckInterrupt(); err != nil {
		t.Fatalf("open channel should not interrupt: %v", err)
	}
	close(done)
	testErrorCode(t, ctx.CheckInterrupt(), diagnostics.ErrR016)
}

func TestFrames(t *testing.T) {
	ctx := NewContext()
	ctx.Globals["g"] = i(1)
	saved := ctx.Enter(3)

	if v, ok := ctx.Lookup(0, "g"); !ok || !testIntegerObject(t, v, 1) {
		t.Errorf("globals should be visible at depth 0")
	}
	if _, ok := ctx.Lookup(2, "x"); ok {
		t.Errorf("fresh frames should be empty")
	}
	ctx.Store(2, "x", i(7))
	if v, ok := ctx.Lookup(2, "x"); !ok || !testIntegerObject(t, v, 7) {
		t.Errorf("stored value not found")
	}
	ctx.Store(0, "h", i(2))
	ctx.Leave(saved)

	if _, ok := ctx.Globals["h"]; !ok {
		t.Errorf("writes at depth 0 must reach the globals")
	}
}

func TestSignals(t *testing.T) {
	ctx := NewContext()
	ctx.SetReturn(i(1), token.Token{Line: 3})
	v, tok, ok := ctx.TakeReturn()
	if !ok || tok.Line != 3 || !testIntegerObject(t, v, 1) {
		t.Errorf("return slot lost its contents")
	}
	if _, _, ok := ctx.TakeReturn(); ok {
		t.Errorf("TakeReturn should clear the slot")
	}

	ctx.SetBreak()
	if !ctx.TakeBreak() || ctx.TakeBreak() {
		t.Errorf("break flag should be read once")
	}
	ctx.SetContinue()
	ctx.Reset()
	if ctx.TakeContinue() {
		t.Errorf("Reset should clear the continue flag")
	}
}
