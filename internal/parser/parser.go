// Package parser implements the recursive-descent Lox parser: tokens in,
// statements out, with panic-mode synchronization so one bad declaration
// doesn't prevent the rest of the file from being checked.
package parser

import (
	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/errors"
	"github.com/cwbudde/lox/internal/token"
)

const maxArgs = 255

// parseError is thrown internally to unwind to the nearest synchronization
// point; it always carries a *errors.CompilerError describing what went
// wrong, which is what callers ultimately see in the list Parse returns.
type parseError struct {
	err *errors.CompilerError
}

// Parser consumes a token slice (always EOF-terminated) and builds a typed
// AST, collecting a CompilerError per malformed declaration rather than
// stopping at the first one.
type Parser struct {
	tokens  []token.Token
	current int
	errs    errors.List
}

// New builds a Parser over tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs the parser to completion and returns the parsed program
// (whatever statements were recovered) along with any errors. Callers must
// treat a non-empty error list as "skip the resolver and interpreter",
// per the spec's error-propagation policy.
func (p *Parser) Parse() ([]ast.Stmt, errors.List) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		stmt := p.declarationRecovering()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errs
}

func (p *Parser) declarationRecovering() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			p.errs = append(p.errs, pe.err)
			p.synchronize()
			stmt = nil
		}
	}()
	return p.declaration()
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.check(token.CLASS):
		return p.classDecl()
	case p.check(token.FUN):
		p.advance()
		return p.function("function")
	case p.check(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	p.advance() // "class"
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	var methods []*ast.FunctionDecl
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassDecl{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionDecl {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.reportAtCurrent("Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block()

	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	p.advance() // "var"
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.check(token.FOR):
		return p.forStmt()
	case p.check(token.IF):
		return p.ifStmt()
	case p.check(token.PRINT):
		return p.printStmt()
	case p.check(token.RETURN):
		return p.returnStmt()
	case p.check(token.WHILE):
		return p.whileStmt()
	case p.check(token.LEFT_BRACE):
		pos := p.advance().Pos
		return ast.NewBlock(p.block(), pos)
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		stmts = append(stmts, p.declarationRecovering())
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

// forStmt desugars `for (init; cond; incr) body` into a Block containing
// init followed by a While whose body appends incr, per the spec's
// desugaring tie-break.
func (p *Parser) forStmt() ast.Stmt {
	keyword := p.advance().Pos // "for"
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.check(token.VAR):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = ast.NewBlock([]ast.Stmt{body, &ast.Expression{Expr: increment}}, keyword)
	}

	if condition == nil {
		condition = &ast.Literal{Value: true, Literal: keyword}
	}
	body = &ast.While{Cond: condition, Body: body, Keyword: keyword}

	if initializer != nil {
		body = ast.NewBlock([]ast.Stmt{initializer, body}, keyword)
	}

	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	keyword := p.advance().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Cond: cond, Then: thenBranch, Else: elseBranch, Keyword: keyword}
}

func (p *Parser) printStmt() ast.Stmt {
	keyword := p.advance().Pos
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Expr: value, Keyword: keyword}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.advance()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	keyword := p.advance().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body, Keyword: keyword}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.Expression{Expr: expr}
}

// --- Expressions, lowest to highest precedence ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.report(equals, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.reportAtCurrent("Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false, Literal: p.previous().Pos}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true, Literal: p.previous().Pos}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil, Literal: p.previous().Pos}
	case p.match(token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.Literal{Value: tok.Literal, Literal: tok.Pos}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		pos := p.previous().Pos
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return ast.NewGrouping(expr, pos)
	default:
		panic(p.errAtCurrent("Expect expression."))
	}
}

// --- token-stream primitives ---

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.atEnd() {
		return t == token.EOF
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errAtCurrent(message))
}

func (p *Parser) errAtCurrent(message string) parseError {
	tok := p.peek()
	return parseError{err: &errors.CompilerError{
		Stage:   errors.Parse,
		Pos:     tok.Pos,
		Lexeme:  tok.Lexeme,
		AtEOF:   tok.Type == token.EOF,
		Message: message,
	}}
}

// reportAtCurrent records a non-fatal diagnostic (e.g. the 255-argument
// cap) without unwinding the parse.
func (p *Parser) reportAtCurrent(message string) {
	tok := p.peek()
	p.errs = append(p.errs, &errors.CompilerError{
		Stage:   errors.Parse,
		Pos:     tok.Pos,
		Lexeme:  tok.Lexeme,
		AtEOF:   tok.Type == token.EOF,
		Message: message,
	})
}

// report records a non-fatal diagnostic anchored at an arbitrary token
// (used for "invalid assignment target", which does not discard input).
func (p *Parser) report(tok token.Token, message string) {
	p.errs = append(p.errs, &errors.CompilerError{
		Stage:   errors.Parse,
		Pos:     tok.Pos,
		Lexeme:  tok.Lexeme,
		AtEOF:   tok.Type == token.EOF,
		Message: message,
	})
}

// synchronize discards tokens until it reaches a probable statement
// boundary, so one malformed declaration doesn't poison the rest of the
// parse.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
