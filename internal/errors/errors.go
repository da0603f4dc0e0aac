// Package errors defines the diagnostic types produced by the scanner,
// parser, and resolver stages, along with the formatting that turns them into the
// standard-error lines described for `lox`. Colorized output follows the
// teacher's CompilerError.Format(color bool) convention: color is applied
// only when the destination is a terminal, detected with mattn/go-isatty.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/cwbudde/lox/internal/token"
)

// Stage identifies which front-end phase raised a CompilerError.
type Stage int

const (
	Scan Stage = iota
	Parse
	Resolve
)

func (s Stage) label() string {
	switch s {
	case Scan:
		return "Scan Error"
	case Parse:
		return "Parse Error"
	case Resolve:
		return "Resolve Error"
	default:
		return "Error"
	}
}

// CompilerError is a scan, parse, or resolve diagnostic. Lexeme is only meaningful
// for Parse errors; it is rendered as `end` when the offending token was
// EOF, matching the reference driver's wording.
type CompilerError struct {
	Message string
	Lexeme  string
	Stage   Stage
	Pos     token.Position
	AtEOF   bool
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic in the wire format required of `lox`:
//
//	Scan Error: [line N] MESSAGE
//	Parse Error: [line N] at LEXEME. MESSAGE
//	Resolve Error: [line N] MESSAGE
//
// When color is true, the stage label is bolded red, matching the
// teacher's terminal-aware diagnostic printer.
func (e *CompilerError) Format(useColor bool) string {
	label := e.Stage.label()
	if useColor {
		label = color.New(color.FgRed, color.Bold).Sprint(label)
	}

	var sb strings.Builder
	sb.WriteString(label)
	sb.WriteString(": [line ")
	fmt.Fprintf(&sb, "%d", e.Pos.Line)
	sb.WriteString("]")

	if e.Stage == Parse {
		lexeme := e.Lexeme
		if e.AtEOF {
			lexeme = "end"
		} else {
			lexeme = "'" + lexeme + "'"
		}
		sb.WriteString(" at ")
		sb.WriteString(lexeme)
		sb.WriteString(".")
	}

	sb.WriteString(" ")
	sb.WriteString(e.Message)
	return sb.String()
}

// List is a collection of CompilerErrors accumulated over a whole scan or
// parse pass; it implements error so callers can return it directly.
type List []*CompilerError

func (l List) Error() string {
	lines := make([]string, len(l))
	for i, e := range l {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
