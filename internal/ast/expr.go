package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/lox/internal/token"
)

// Literal is a number, string, boolean, or nil constant.
type Literal struct {
	Value   any
	Literal token.Position
}

func (e *Literal) exprNode()          {}
func (e *Literal) Pos() token.Position { return e.Literal }
func (e *Literal) String() string {
	switch v := e.Value.(type) {
	case nil:
		return "nil"
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Variable is a bare identifier read, e.g. `x`.
type Variable struct {
	Name token.Token
}

func (e *Variable) exprNode()           {}
func (e *Variable) Pos() token.Position { return e.Name.Pos }
func (e *Variable) String() string      { return e.Name.Lexeme }

// Assign is `name = value`.
type Assign struct {
	Value Expr
	Name  token.Token
}

func (e *Assign) exprNode()           {}
func (e *Assign) Pos() token.Position { return e.Name.Pos }
func (e *Assign) String() string      { return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, e.Value) }

// Unary is a prefix operator application: `-right` or `!right`.
type Unary struct {
	Right Expr
	Op    token.Token
}

func (e *Unary) exprNode()           {}
func (e *Unary) Pos() token.Position { return e.Op.Pos }
func (e *Unary) String() string      { return fmt.Sprintf("(%s %s)", e.Op.Lexeme, e.Right) }

// Binary is an infix arithmetic or comparison operator application.
type Binary struct {
	Left  Expr
	Right Expr
	Op    token.Token
}

func (e *Binary) exprNode()           {}
func (e *Binary) Pos() token.Position { return e.Op.Pos }
func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, e.Left, e.Right)
}

// Logical is `and`/`or`; unlike Binary it short-circuits.
type Logical struct {
	Left  Expr
	Right Expr
	Op    token.Token
}

func (e *Logical) exprNode()           {}
func (e *Logical) Pos() token.Position { return e.Op.Pos }
func (e *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, e.Left, e.Right)
}

// Grouping is a parenthesized expression; it exists so printers can show the
// parentheses even though evaluation simply forwards to Inner.
type Grouping struct {
	Inner    Expr
	position token.Position
}

func NewGrouping(inner Expr, pos token.Position) *Grouping {
	return &Grouping{Inner: inner, position: pos}
}

func (e *Grouping) exprNode()           {}
func (e *Grouping) Pos() token.Position { return e.position }
func (e *Grouping) String() string      { return fmt.Sprintf("(group %s)", e.Inner) }

// Call is a function/method/class invocation. Paren is the closing `)`
// token, kept for runtime-error positions per the spec's token interface.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (e *Call) exprNode()           {}
func (e *Call) Pos() token.Position { return e.Paren.Pos }
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", e.Callee, strings.Join(args, " "))
}

// Get is a property/method read: `object.Name`.
type Get struct {
	Object Expr
	Name   token.Token
}

func (e *Get) exprNode()           {}
func (e *Get) Pos() token.Position { return e.Name.Pos }
func (e *Get) String() string      { return fmt.Sprintf("(get %s %s)", e.Object, e.Name.Lexeme) }

// Set is a property write: `object.Name = Value`.
type Set struct {
	Object Expr
	Value  Expr
	Name   token.Token
}

func (e *Set) exprNode()           {}
func (e *Set) Pos() token.Position { return e.Name.Pos }
func (e *Set) String() string {
	return fmt.Sprintf("(set %s %s %s)", e.Object, e.Name.Lexeme, e.Value)
}

// This is the `this` keyword used inside a method body. Its hop distance is
// not stored on the node; the resolver records it in its Resolution table.
type This struct {
	Keyword token.Token
}

func (e *This) exprNode()           {}
func (e *This) Pos() token.Position { return e.Keyword.Pos }
func (e *This) String() string      { return "this" }

// Super is `super.Method`, valid only inside a subclass method body.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (e *Super) exprNode()           {}
func (e *Super) Pos() token.Position { return e.Keyword.Pos }
func (e *Super) String() string      { return fmt.Sprintf("(super %s)", e.Method.Lexeme) }
