// Package resolver performs the static lexical-scope analysis described in
// spec.md §4.2: it walks the parsed statement list once, computing a hop
// distance for every variable/assignment/this/super use site, and enforces
// the handful of compile-time rules the grammar alone can't. Rather than
// mutating the AST in place (the reference implementation's approach), it
// returns a side table keyed by node identity — an accepted alternative per
// spec.md §9 that keeps internal/ast free of resolver-specific state.
package resolver

import (
	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/errors"
	"github.com/cwbudde/lox/internal/token"
)

// Resolution is the output of a resolve pass: the hop distance recorded for
// every Variable, Assign, This, and Super node the resolver determined is
// NOT a global. Absence from the map means "look up in globals at run
// time" — the interpreter must treat a missing entry that way, not as a
// bug.
type Resolution struct {
	distances map[ast.Expr]int
}

// DistanceOf reports the hop distance recorded for expr, if any. A nil
// Resolution records no distances.
func (r *Resolution) DistanceOf(expr ast.Expr) (int, bool) {
	if r == nil {
		return 0, false
	}
	d, ok := r.distances[expr]
	return d, ok
}

func (r *Resolution) set(expr ast.Expr, distance int) {
	r.distances[expr] = distance
}

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a name to whether its initializer has finished resolving.
type scope map[string]bool

// Resolver carries the ambient state (scope stack, current function/class
// context) needed across the single recursive walk.
type Resolver struct {
	scopes          []scope
	resolution      *Resolution
	errs            errors.List
	currentFunction functionKind
	currentClass    classKind
}

// New creates a Resolver ready to resolve one program.
func New() *Resolver {
	return &Resolver{resolution: &Resolution{distances: make(map[ast.Expr]int)}}
}

// Resolve runs the static analysis over stmts. A non-empty error list means
// the caller must skip interpretation entirely, per spec.md §4.2.
func Resolve(stmts []ast.Stmt) (*Resolution, errors.List) {
	r := New()
	r.resolveStmts(stmts)
	return r.resolution, r.errs
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch stmt := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(stmt.Stmts)
		r.endScope()

	case *ast.Var:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.resolveExpr(stmt.Initializer)
		}
		r.define(stmt.Name)

	case *ast.FunctionDecl:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, fnFunction)

	case *ast.Expression:
		r.resolveExpr(stmt.Expr)

	case *ast.If:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}

	case *ast.Print:
		r.resolveExpr(stmt.Expr)

	case *ast.Return:
		if r.currentFunction == fnNone {
			r.report(stmt.Keyword.Pos, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.currentFunction == fnInitializer {
				r.report(stmt.Keyword.Pos, "Can't return a value from an initializer.")
			}
			r.resolveExpr(stmt.Value)
		}

	case *ast.While:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Body)

	case *ast.ClassDecl:
		r.resolveClassDecl(stmt)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClassDecl(stmt *ast.ClassDecl) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.report(stmt.Superclass.Name.Pos, "A class can't inherit from itself.")
		} else {
			r.currentClass = classSubclass
			r.resolveExpr(stmt.Superclass)
		}

		r.beginScope()
		defer r.endScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	defer r.endScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()

	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch expr := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
				r.report(expr.Name.Pos, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, expr.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *ast.Call:
		r.resolveExpr(expr.Callee)
		for _, a := range expr.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(expr.Object)

	case *ast.Set:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)

	case *ast.Grouping:
		r.resolveExpr(expr.Inner)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Logical:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *ast.Unary:
		r.resolveExpr(expr.Right)

	case *ast.This:
		if r.currentClass == classNone {
			r.report(expr.Keyword.Pos, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, "this")

	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.report(expr.Keyword.Pos, "Can't use 'super' outside of a class.")
		case classClass:
			r.report(expr.Keyword.Pos, "Can't use 'super' in a class with no superclass.")
		default:
			r.resolveLocal(expr, "super")
		}

	default:
		panic("resolver: unhandled expression type")
	}
}

// resolveLocal walks the scope stack from innermost outward, recording the
// hop distance for the first scope that declares name. No match means the
// name is left unresolved, i.e. a global.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.resolution.set(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return // globals permit redeclaration; nothing to track
	}
	current := r.scopes[len(r.scopes)-1]
	if _, ok := current[name.Lexeme]; ok {
		r.report(name.Pos, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) report(pos token.Position, message string) {
	r.errs = append(r.errs, &errors.CompilerError{
		Stage:   errors.Resolve,
		Pos:     pos,
		Message: message,
	})
}
