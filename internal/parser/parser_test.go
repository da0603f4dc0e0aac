package parser

import (
	"testing"

	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/lexer"
)

func parseSource(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, scanErrs := lexer.New(src).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	stmts, errs := New(tokens).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return stmts
}

func TestParseVarDecl(t *testing.T) {
	stmts := parseSource(t, `var x = 1 + 2;`)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	v, ok := stmts[0].(*ast.Var)
	if !ok {
		t.Fatalf("got %T, want *ast.Var", stmts[0])
	}
	if v.Name.Lexeme != "x" {
		t.Fatalf("got name %q, want x", v.Name.Lexeme)
	}
	if v.Initializer.String() != "(+ 1 2)" {
		t.Fatalf("got initializer %q, want (+ 1 2)", v.Initializer.String())
	}
}

func TestParseIfElse(t *testing.T) {
	stmts := parseSource(t, `if (true) print 1; else print 2;`)
	stmt, ok := stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", stmts[0])
	}
	if stmt.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parseSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	block, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("got %T, want *ast.Block", stmts[0])
	}
	if len(block.Stmts) != 2 {
		t.Fatalf("got %d stmts in desugared block, want 2", len(block.Stmts))
	}
	if _, ok := block.Stmts[0].(*ast.Var); !ok {
		t.Fatalf("first stmt = %T, want *ast.Var", block.Stmts[0])
	}
	whileStmt, ok := block.Stmts[1].(*ast.While)
	if !ok {
		t.Fatalf("second stmt = %T, want *ast.While", block.Stmts[1])
	}
	body, ok := whileStmt.Body.(*ast.Block)
	if !ok {
		t.Fatalf("while body = %T, want *ast.Block", whileStmt.Body)
	}
	if len(body.Stmts) != 2 {
		t.Fatalf("got %d stmts in while body, want 2 (print + increment)", len(body.Stmts))
	}
}

func TestParseAssignmentTargetReclassification(t *testing.T) {
	stmts := parseSource(t, `x = 1; obj.field = 2;`)
	if _, ok := stmts[0].(*ast.Expression).Expr.(*ast.Assign); !ok {
		t.Fatalf("got %T, want *ast.Assign", stmts[0].(*ast.Expression).Expr)
	}
	if _, ok := stmts[1].(*ast.Expression).Expr.(*ast.Set); !ok {
		t.Fatalf("got %T, want *ast.Set", stmts[1].(*ast.Expression).Expr)
	}
}

func TestParseInvalidAssignmentTargetReportsWithoutAborting(t *testing.T) {
	tokens, _ := lexer.New(`1 = 2; print "still here";`).ScanTokens()
	stmts, errs := New(tokens).Parse()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2 (parsing continued)", len(stmts))
	}
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parseSource(t, `class B < A { hello() { print "hi"; } }`)
	decl, ok := stmts[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassDecl", stmts[0])
	}
	if decl.Superclass == nil || decl.Superclass.Name.Lexeme != "A" {
		t.Fatalf("got superclass %v, want A", decl.Superclass)
	}
	if len(decl.Methods) != 1 || decl.Methods[0].Name.Lexeme != "hello" {
		t.Fatalf("got methods %v", decl.Methods)
	}
}

func TestParseSynchronizesAfterError(t *testing.T) {
	tokens, _ := lexer.New(`var = ; var ok = 1;`).ScanTokens()
	stmts, errs := New(tokens).Parse()
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error")
	}
	var found bool
	for _, s := range stmts {
		if v, ok := s.(*ast.Var); ok && v.Name.Lexeme == "ok" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovery to reach 'var ok = 1;', got %v", stmts)
	}
}

func TestParseArgumentCapIsNonFatal(t *testing.T) {
	src := "fun f() { return 1; } f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"

	tokens, _ := lexer.New(src).ScanTokens()
	stmts, errs := New(tokens).Parse()
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2 (parsing continued past the cap)", len(stmts))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 diagnostic for the 256th argument", len(errs))
	}
}
