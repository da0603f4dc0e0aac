package runtime

import "testing"

func TestEnvironmentDefineGetAssign(t *testing.T) {
	globals := NewGlobals()
	globals.Define("x", Number(1))

	v, ok := globals.Get("x")
	if !ok || v != Number(1) {
		t.Fatalf("got %v, %v, want 1, true", v, ok)
	}

	if !globals.Assign("x", Number(2)) {
		t.Fatal("assign to existing global failed")
	}
	v, _ = globals.Get("x")
	if v != Number(2) {
		t.Fatalf("got %v, want 2", v)
	}

	if globals.Assign("missing", Number(0)) {
		t.Fatal("assign to undefined name should fail")
	}
}

func TestEnvironmentShadowingAndChain(t *testing.T) {
	globals := NewGlobals()
	globals.Define("a", String_("global"))

	block := NewEnclosed(globals)
	v, ok := block.Get("a")
	if !ok || v != String_("global") {
		t.Fatalf("expected inherited global, got %v, %v", v, ok)
	}

	block.Define("a", String_("local"))
	v, _ = block.Get("a")
	if v != String_("local") {
		t.Fatalf("got %v, want local (shadowed)", v)
	}

	v, _ = globals.Get("a")
	if v != String_("global") {
		t.Fatalf("shadowing mutated the parent scope: got %v", v)
	}
}

func TestEnvironmentDistanceIndexedAccess(t *testing.T) {
	globals := NewGlobals()
	outer := NewEnclosed(globals)
	outer.Define("a", Number(1))
	inner := NewEnclosed(outer)

	v, ok := inner.GetAt(1, "a")
	if !ok || v != Number(1) {
		t.Fatalf("got %v, %v, want 1, true", v, ok)
	}

	inner.AssignAt(1, "a", Number(9))
	v, _ = outer.Get1("a")
	if v != Number(9) {
		t.Fatalf("got %v, want 9", v)
	}
}

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{Number(0), true},
		{String_(""), true},
	}
	for _, c := range cases {
		if got := IsTruthy(c.v); got != c.want {
			t.Errorf("IsTruthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestNumberStringFormatting(t *testing.T) {
	cases := []struct {
		n    Number
		want string
	}{
		{123, "123"},
		{45.67, "45.67"},
		{0, "0"},
	}
	for _, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Errorf("Number(%v).String() = %q, want %q", float64(c.n), got, c.want)
		}
	}
}

func TestClassMethodLookupWalksSuperclassChain(t *testing.T) {
	base := &Class{Name: "A", Methods: map[string]*Function{
		"hello": {Decl: nil},
	}}
	derived := &Class{Name: "B", Superclass: base, Methods: map[string]*Function{}}

	fn, ok := derived.FindMethod("hello")
	if !ok || fn != base.Methods["hello"] {
		t.Fatalf("expected inherited method lookup to find base's hello")
	}
}

func TestInstanceFieldsShadowMethods(t *testing.T) {
	class := &Class{Name: "Point", Methods: map[string]*Function{
		"x": {Decl: nil},
	}}
	instance := &Instance{Class: class, Fields: map[string]Value{"x": Number(42)}}

	v, ok := instance.Get("x")
	if !ok || v != Value(Number(42)) {
		t.Fatalf("expected field to shadow method, got %v", v)
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Nil{}, Nil{}) {
		t.Error("Nil should equal Nil")
	}
	if Equal(Nil{}, Bool(false)) {
		t.Error("Nil should not equal false")
	}
	if Equal(Number(1), String_("1")) {
		t.Error("different kinds should never compare equal")
	}
	if !Equal(String_("a"), String_("a")) {
		t.Error("equal strings should compare equal")
	}

	inst1 := &Instance{Class: &Class{Name: "A"}, Fields: map[string]Value{}}
	inst2 := &Instance{Class: &Class{Name: "A"}, Fields: map[string]Value{}}
	if Equal(inst1, inst2) {
		t.Error("distinct instances should not compare equal (identity semantics)")
	}
	if !Equal(inst1, inst1) {
		t.Error("an instance should equal itself")
	}
}
