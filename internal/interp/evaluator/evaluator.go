// Package evaluator implements the tree-walking interpreter: it evaluates
// expressions to runtime.Values, executes statements for their side
// effects, and owns the environment chain, matching the structure of the
// teacher's internal/interp/runner + internal/interp/runtime split, but
// with the DWScript-specific type system, unit loader, and virtual-method
// dispatch stripped down to exactly what Lox's class/instance/closure
// protocol needs.
package evaluator

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/interp/runtime"
	"github.com/cwbudde/lox/internal/resolver"
	"github.com/cwbudde/lox/internal/token"
)

// Interpreter walks a resolved AST. It is reused across REPL lines: one
// Interpreter per process, so that top-level `var` declarations and
// function/class definitions persist between prompts — a deliberate
// jlox-style choice rather than one grounded in the original rilox driver,
// which constructs a fresh interpreter per `run()` call and so discards
// state between prompt lines (see DESIGN.md's Open Questions entry).
type Interpreter struct {
	Globals    *runtime.Environment
	Stdout     io.Writer
	current    *runtime.Environment
	resolution *resolver.Resolution

	// Trace, when set, logs each executed statement and each call's
	// entry/exit to stderr.
	Trace bool

	// MaxCallDepth bounds the number of nested Callable.Call invocations a
	// single evalCall chain may reach before a RuntimeError is raised
	// instead of letting unbounded Lox recursion exhaust the Go stack.
	// Zero (the Interpreter's zero value) means unbounded.
	MaxCallDepth int
	callDepth    int
}

// New builds an Interpreter with globals pre-populated with the native
// function set (spec.md §4.4).
func New(stdout io.Writer) *Interpreter {
	globals := runtime.NewGlobals()
	interp := &Interpreter{Globals: globals, Stdout: stdout, current: globals}
	interp.defineNatives()
	return interp
}

func (in *Interpreter) defineNatives() {
	in.Globals.Define("clock", &runtime.NativeFunction{
		Name: "clock",
		Arg:  0,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
	in.Globals.Define("str", &runtime.NativeFunction{
		Name: "str",
		Arg:  1,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.String_(args[0].String()), nil
		},
	})
}

// Run executes a resolved program, stopping at (and returning) the first
// runtime error — matching spec.md §7's "aborts the current statement and
// unwinds ... up to the top-level driver" policy. resolution may be nil,
// in which case every variable/this/super site falls back to globals.
func (in *Interpreter) Run(program []ast.Stmt, resolution *resolver.Resolution) error {
	in.resolution = resolution
	for _, stmt := range program {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteBlock satisfies runtime.Interp: it runs stmts against env,
// restoring the previous current environment on every exit path (normal
// completion, runtime error, or return signal), per spec.md §5's
// scoped-acquisition pattern.
func (in *Interpreter) ExecuteBlock(stmts []ast.Stmt, env *runtime.Environment) error {
	previous := in.current
	in.current = env
	defer func() { in.current = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(s ast.Stmt) error {
	if in.Trace {
		fmt.Fprintf(os.Stderr, "trace: [line %d] executing %s\n", s.Pos().Line, stmtKind(s))
	}

	switch stmt := s.(type) {
	case *ast.Expression:
		_, err := in.eval(stmt.Expr)
		return err

	case *ast.Print:
		v, err := in.eval(stmt.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, runtime.Display(v))
		return nil

	case *ast.Var:
		var value runtime.Value = runtime.Nil{}
		if stmt.Initializer != nil {
			v, err := in.eval(stmt.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.current.Define(stmt.Name.Lexeme, value)
		return nil

	case *ast.Block:
		return in.ExecuteBlock(stmt.Stmts, runtime.NewEnclosed(in.current))

	case *ast.If:
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return err
		}
		if runtime.IsTruthy(cond) {
			return in.execute(stmt.Then)
		}
		if stmt.Else != nil {
			return in.execute(stmt.Else)
		}
		return nil

	case *ast.While:
		for {
			cond, err := in.eval(stmt.Cond)
			if err != nil {
				return err
			}
			if !runtime.IsTruthy(cond) {
				return nil
			}
			if err := in.execute(stmt.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionDecl:
		fn := &runtime.Function{Decl: stmt, Closure: in.current}
		in.current.Define(stmt.Name.Lexeme, fn)
		return nil

	case *ast.Return:
		var value runtime.Value = runtime.Nil{}
		if stmt.Value != nil {
			v, err := in.eval(stmt.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &runtime.ReturnSignal{Value: value}

	case *ast.ClassDecl:
		return in.executeClassDecl(stmt)

	default:
		panic("evaluator: unhandled statement type")
	}
}

// stmtKind names a statement's concrete kind for --trace output without
// rendering a multi-line body (stmt.String() on a Block/FunctionDecl would
// dump the whole nested body, drowning the trace in noise).
func stmtKind(s ast.Stmt) string {
	switch stmt := s.(type) {
	case *ast.Print:
		return "print " + stmt.Expr.String()
	case *ast.Var:
		return "var " + stmt.Name.Lexeme
	case *ast.FunctionDecl:
		return "fun " + stmt.Name.Lexeme
	case *ast.ClassDecl:
		return "class " + stmt.Name.Lexeme
	case *ast.Return:
		return "return"
	case *ast.If:
		return "if"
	case *ast.While:
		return "while"
	case *ast.Block:
		return "block"
	case *ast.Expression:
		return stmt.Expr.String()
	default:
		return fmt.Sprintf("%T", s)
	}
}

func (in *Interpreter) executeClassDecl(stmt *ast.ClassDecl) error {
	var superclass *runtime.Class
	if stmt.Superclass != nil {
		v, err := in.eval(stmt.Superclass)
		if err != nil {
			return err
		}
		class, ok := v.(*runtime.Class)
		if !ok {
			return runtime.NewRuntimeError(stmt.Superclass.Pos(), "Superclass must be a class.")
		}
		superclass = class
	}

	in.current.Define(stmt.Name.Lexeme, runtime.Nil{})

	env := in.current
	if superclass != nil {
		env = runtime.NewEnclosed(in.current)
		env.Define("super", superclass)
	}

	methods := make(map[string]*runtime.Function, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = &runtime.Function{
			Decl:          m,
			Closure:       env,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &runtime.Class{Name: stmt.Name.Lexeme, Superclass: superclass, Methods: methods}
	in.current.Assign(stmt.Name.Lexeme, class)
	return nil
}

func (in *Interpreter) eval(e ast.Expr) (runtime.Value, error) {
	switch expr := e.(type) {
	case *ast.Literal:
		return literalValue(expr.Value), nil

	case *ast.Grouping:
		return in.eval(expr.Inner)

	case *ast.Variable:
		return in.lookUpVariable(expr.Name, expr)

	case *ast.Assign:
		value, err := in.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		if d, ok := in.resolution.DistanceOf(expr); ok {
			in.current.AssignAt(d, expr.Name.Lexeme, value)
		} else if !in.Globals.Assign(expr.Name.Lexeme, value) {
			return nil, runtime.NewRuntimeError(expr.Name.Pos, "Undefined variable '%s'.", expr.Name.Lexeme)
		}
		return value, nil

	case *ast.Unary:
		return in.evalUnary(expr)

	case *ast.Binary:
		return in.evalBinary(expr)

	case *ast.Logical:
		return in.evalLogical(expr)

	case *ast.Call:
		return in.evalCall(expr)

	case *ast.Get:
		return in.evalGet(expr)

	case *ast.Set:
		return in.evalSet(expr)

	case *ast.This:
		return in.lookUpVariable(expr.Keyword, expr)

	case *ast.Super:
		return in.evalSuper(expr)

	default:
		panic("evaluator: unhandled expression type")
	}
}

func literalValue(v any) runtime.Value {
	switch t := v.(type) {
	case nil:
		return runtime.Nil{}
	case bool:
		return runtime.Bool(t)
	case float64:
		return runtime.Number(t)
	case string:
		return runtime.String_(t)
	default:
		return runtime.Nil{}
	}
}

// lookUpVariable resolves a Variable/This read either by recorded hop
// distance or, absent one, against globals — spec.md §4.3's rule.
func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (runtime.Value, error) {
	if in.resolution != nil {
		if d, ok := in.resolution.DistanceOf(expr); ok {
			if v, ok := in.current.GetAt(d, name.Lexeme); ok {
				return v, nil
			}
		}
	}
	if v, ok := in.Globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, runtime.NewRuntimeError(name.Pos, "Undefined variable '%s'.", name.Lexeme)
}

func (in *Interpreter) evalUnary(expr *ast.Unary) (runtime.Value, error) {
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.MINUS:
		n, ok := right.(runtime.Number)
		if !ok {
			return nil, runtime.NewRuntimeError(expr.Op.Pos, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return runtime.Bool(!runtime.IsTruthy(right)), nil
	default:
		panic("evaluator: unhandled unary operator")
	}
}

func (in *Interpreter) evalLogical(expr *ast.Logical) (runtime.Value, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Op.Type == token.OR {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	}
	return in.eval(expr.Right)
}

func (in *Interpreter) evalBinary(expr *ast.Binary) (runtime.Value, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.PLUS:
		if ln, ok := left.(runtime.Number); ok {
			if rn, ok := right.(runtime.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(runtime.String_); ok {
			if rs, ok := right.(runtime.String_); ok {
				return ls + rs, nil
			}
		}
		return nil, runtime.NewRuntimeError(expr.Op.Pos, "Operands must be two numbers or two strings.")

	case token.MINUS:
		ln, rn, err := in.numberOperands(expr.Op.Pos, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil

	case token.STAR:
		ln, rn, err := in.numberOperands(expr.Op.Pos, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil

	case token.SLASH:
		ln, rn, err := in.numberOperands(expr.Op.Pos, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, runtime.NewRuntimeError(expr.Op.Pos, "Attempt to divide %s by zero.", ln)
		}
		return ln / rn, nil

	case token.GREATER:
		ln, rn, err := in.numberOperands(expr.Op.Pos, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln > rn), nil

	case token.GREATER_EQUAL:
		ln, rn, err := in.numberOperands(expr.Op.Pos, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln >= rn), nil

	case token.LESS:
		ln, rn, err := in.numberOperands(expr.Op.Pos, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln < rn), nil

	case token.LESS_EQUAL:
		ln, rn, err := in.numberOperands(expr.Op.Pos, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(ln <= rn), nil

	case token.EQUAL_EQUAL:
		return runtime.Bool(runtime.Equal(left, right)), nil

	case token.BANG_EQUAL:
		return runtime.Bool(!runtime.Equal(left, right)), nil

	default:
		panic("evaluator: unhandled binary operator")
	}
}

func (in *Interpreter) numberOperands(pos token.Position, left, right runtime.Value) (runtime.Number, runtime.Number, error) {
	ln, ok := left.(runtime.Number)
	if !ok {
		return 0, 0, runtime.NewRuntimeError(pos, "Operand(s) must be a number.")
	}
	rn, ok := right.(runtime.Number)
	if !ok {
		return 0, 0, runtime.NewRuntimeError(pos, "Operand(s) must be a number.")
	}
	return ln, rn, nil
}

func (in *Interpreter) evalCall(expr *ast.Call) (runtime.Value, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtime.NewRuntimeError(expr.Paren.Pos, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, runtime.NewRuntimeError(expr.Paren.Pos, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}

	if in.MaxCallDepth > 0 && in.callDepth >= in.MaxCallDepth {
		return nil, runtime.NewRuntimeError(expr.Paren.Pos, "Stack overflow: call depth exceeded %d.", in.MaxCallDepth)
	}

	in.callDepth++
	if in.Trace {
		fmt.Fprintf(os.Stderr, "trace: call %s (depth %d)\n", callee.String(), in.callDepth)
	}
	result, err := callable.Call(in, args)
	if in.Trace {
		fmt.Fprintf(os.Stderr, "trace: return from %s (depth %d)\n", callee.String(), in.callDepth)
	}
	in.callDepth--

	return result, err
}

func (in *Interpreter) evalGet(expr *ast.Get) (runtime.Value, error) {
	obj, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, runtime.NewRuntimeError(expr.Name.Pos, "Only instances have properties.")
	}
	v, ok := instance.Get(expr.Name.Lexeme)
	if !ok {
		return nil, runtime.NewRuntimeError(expr.Name.Pos, "Undefined property '%s'.", expr.Name.Lexeme)
	}
	return v, nil
}

func (in *Interpreter) evalSet(expr *ast.Set) (runtime.Value, error) {
	obj, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, runtime.NewRuntimeError(expr.Name.Pos, "Only instances have fields.")
	}
	value, err := in.eval(expr.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name.Lexeme, value)
	return value, nil
}

func (in *Interpreter) evalSuper(expr *ast.Super) (runtime.Value, error) {
	d, ok := in.resolution.DistanceOf(expr)
	if !ok {
		return nil, runtime.NewRuntimeError(expr.Keyword.Pos, "Undefined variable 'super'.")
	}
	superVal, _ := in.current.GetAt(d, "super")
	superclass := superVal.(*runtime.Class)

	thisVal, _ := in.current.GetAt(d-1, "this")
	instance := thisVal.(*runtime.Instance)

	method, ok := superclass.FindMethod(expr.Method.Lexeme)
	if !ok {
		return nil, runtime.NewRuntimeError(expr.Method.Pos, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
