package ast

import (
	"github.com/tidwall/sjson"
)

// ToJSON renders a parsed program as JSON: each top-level statement
// becomes an entry in a "stmts" array carrying its line, a coarse "kind"
// tag, and its S-expression source rendering. It is built incrementally
// with sjson rather than a tagged-struct json.Marshal, since Stmt/Expr are
// interfaces with no exported field shape uniform enough for reflection to
// walk on its own — `lox parse --dump-ast-json` exists for tooling that
// wants to grep/query the tree, not for a lossless re-parseable encoding.
func ToJSON(stmts []Stmt) (string, error) {
	doc := "{}"
	var err error
	for _, stmt := range stmts {
		doc, err = sjson.Set(doc, "stmts.-1", map[string]any{
			"kind":   kindOf(stmt),
			"line":   stmt.Pos().Line,
			"source": stmt.String(),
		})
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func kindOf(s Stmt) string {
	switch s.(type) {
	case *Expression:
		return "expression"
	case *Print:
		return "print"
	case *Var:
		return "var"
	case *Block:
		return "block"
	case *If:
		return "if"
	case *While:
		return "while"
	case *FunctionDecl:
		return "function"
	case *Return:
		return "return"
	case *ClassDecl:
		return "class"
	default:
		return "unknown"
	}
}
