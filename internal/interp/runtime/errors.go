package runtime

import (
	"fmt"

	"github.com/cwbudde/lox/internal/token"
)

// RuntimeError is a Lox runtime fault: a type error, an undefined name, an
// arity mismatch, division by zero. It aborts the current statement and
// unwinds to the top-level driver, per spec.md §7.
type RuntimeError struct {
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime Error: [line %d] %s", e.Pos.Line, e.Message)
}

// NewRuntimeError builds a RuntimeError at pos with a formatted message.
func NewRuntimeError(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ReturnSignal is thrown by a `return` statement and caught at the
// enclosing function invocation. It satisfies error only so it can travel
// through the same unwinding path as a RuntimeError, but per spec.md §7 it
// must never be reported to the user — callers distinguish it by type
// assertion, not by printing Error().
type ReturnSignal struct {
	Value Value
}

func (r *ReturnSignal) Error() string {
	return fmt.Sprintf("RuntimeReturn: %s", r.Value)
}
