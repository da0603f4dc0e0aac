// Package runtime implements the Lox runtime object model: values,
// environments, callables, and the class/instance protocol that the
// interpreter walks the AST against. It is deliberately a trimmed
// descendant of the teacher's runtime package (internal/interp/runtime in
// the DWScript source): that package layers IClassInfo, MethodRegistry,
// operator-overload tables, and a dozen numeric kinds on top of the same
// Value/Environment shape, none of which Lox's data model calls for.
package runtime

import (
	"strconv"
)

// Value is any runtime object a Lox expression can evaluate to. It mirrors
// the teacher's Value interface hierarchy (internal/interp/runtime/value_
// interfaces.go) trimmed to the handful of capabilities Lox actually needs:
// every Value can describe its own type and render itself for `print`.
type Value interface {
	Type() string
	String() string
}

// Nil is the value of an uninitialized variable and the literal `nil`.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// Bool is a Lox boolean.
type Bool bool

func (Bool) Type() string { return "bool" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is a Lox number, always double-precision, matching the host
// language's single numeric type.
type Number float64

func (Number) Type() string { return "number" }

// String renders the Lox convention: integer-valued numbers print with no
// fractional part; others use Go's shortest round-trippable form.
func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String_ is a Lox string. Named with a trailing underscore to avoid
// colliding with the built-in string type and the String() method below.
type String_ string

func (String_) Type() string     { return "string" }
func (s String_) String() string { return string(s) }

// IsTruthy implements the spec's truthiness rule: only Nil and Bool(false)
// are falsy.
func IsTruthy(v Value) bool {
	switch t := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(t)
	default:
		return true
	}
}

// Equal implements Lox's total equality: structural for primitives,
// identity for every reference type (Function, Class, Instance).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String_:
		bv, ok := b.(String_)
		return ok && av == bv
	default:
		return a == b
	}
}

// Display formats a value the way `print` emits it. It returns the value's
// own String(); the reference-type labels (`<fn NAME>`, `<class NAME>`,
// `<NAME instance>`) come from the String methods of those types.
func Display(v Value) string {
	return v.String()
}
