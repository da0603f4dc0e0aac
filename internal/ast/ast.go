// Package ast defines the typed syntax tree produced by the parser and
// walked by the resolver and interpreter. Expr and Stmt are closed sum
// types: each variant is a distinct Go type, and callers dispatch on them
// with a type switch rather than a Visitor — per the spec's guidance that a
// systems-language port should prefer direct pattern matching over
// double-dispatch machinery.
package ast

import "github.com/cwbudde/lox/internal/token"

// Node is the common capability of every AST node: its source position, for
// diagnostics, and a debug-printable form.
type Node interface {
	Pos() token.Position
	String() string
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}
