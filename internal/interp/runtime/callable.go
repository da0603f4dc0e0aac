package runtime

import "github.com/cwbudde/lox/internal/ast"

// Interp is the slice of interpreter behavior a Callable needs in order to
// invoke a function body: executing a block of statements against a given
// environment, returning a *ReturnSignal (unwrapped to its Value by the
// caller), a *RuntimeError, or nil on normal fallthrough. Declaring the
// interface here rather than importing the evaluator package keeps runtime
// free of a dependency on its own caller; evaluator.Interpreter satisfies
// this interface.
type Interp interface {
	ExecuteBlock(stmts []ast.Stmt, env *Environment) error
}

// Callable is any Value that can appear as the callee of a Call
// expression: user functions, native functions, and classes (whose "call"
// constructs an instance).
type Callable interface {
	Value
	Arity() int
	Call(interp Interp, args []Value) (Value, error)
}
