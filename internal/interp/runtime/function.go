package runtime

import (
	"fmt"

	"github.com/cwbudde/lox/internal/ast"
)

// Function is a user-defined Lox function or method: the parsed
// declaration plus the environment captured at the point it was declared
// (its closure). IsInitializer marks a class's `init` method, which must
// always yield `this` regardless of how its body returns.
type Function struct {
	Decl          *ast.FunctionDecl
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Type() string { return "function" }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

func (f *Function) Arity() int {
	return len(f.Decl.Params)
}

// Call creates a fresh environment parented to the closure, binds
// parameters positionally, and runs the body through interp. A *
// ReturnSignal unwinds into this function's result; an initializer
// overrides whatever that result was with the bound `this`, per spec.md
// §4.3.
func (f *Function) Call(interp Interp, args []Value) (Value, error) {
	env := NewEnclosed(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := interp.ExecuteBlock(f.Decl.Body, env)
	if err != nil {
		if ret, ok := err.(*ReturnSignal); ok {
			if f.IsInitializer {
				return f.boundThis(), nil
			}
			return ret.Value, nil
		}
		return nil, err
	}

	if f.IsInitializer {
		return f.boundThis(), nil
	}
	return Nil{}, nil
}

func (f *Function) boundThis() Value {
	v, _ := f.Closure.GetAt(0, "this")
	return v
}

// Bind produces a fresh Function whose closure binds `this` to instance,
// parented to f's own closure — the mechanism behind method lookup on an
// instance (spec.md's "Method binding").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosed(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction is a builtin injected into globals at interpreter
// construction, e.g. clock().
type NativeFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
	Arg  int
}

func (n *NativeFunction) Type() string       { return "native function" }
func (n *NativeFunction) String() string     { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *NativeFunction) Arity() int         { return n.Arg }
func (n *NativeFunction) Call(_ Interp, args []Value) (Value, error) {
	return n.Fn(args)
}

var (
	_ Callable = (*Function)(nil)
	_ Callable = (*NativeFunction)(nil)
)
