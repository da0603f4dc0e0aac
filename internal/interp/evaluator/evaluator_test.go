package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/lox/internal/lexer"
	"github.com/cwbudde/lox/internal/parser"
	"github.com/cwbudde/lox/internal/resolver"
)

func runSource(t *testing.T, src string) string {
	t.Helper()

	tokens, scanErrs := lexer.New(src).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}

	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	resolution, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", resolveErrs)
	}

	var out bytes.Buffer
	interp := New(&out)
	if err := interp.Run(stmts, resolution); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out.String()
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestClosureCapture(t *testing.T) {
	out := runSource(t, `
fun makeCounter() {
  var i = 0;
  fun c() {
    i = i + 1;
    return i;
  }
  return c;
}
var c = makeCounter();
print c();
print c();
print c();
`)
	want := []string{"1", "2", "3"}
	got := lines(out)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexicalShadowingDoesNotRetroactivelyCapture(t *testing.T) {
	out := runSource(t, `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "local";
  show();
}
`)
	want := []string{"global", "global"}
	if got := lines(out); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestInheritanceWithSuper(t *testing.T) {
	out := runSource(t, `
class A { hello() { print "A"; } }
class B < A { hello() { super.hello(); print "B"; } }
B().hello();
`)
	want := []string{"A", "B"}
	if got := lines(out); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestInitializerReturnsThis(t *testing.T) {
	out := runSource(t, `
class Point { init(x, y) { this.x = x; this.y = y; } }
var p = Point(3, 4);
print p.x;
print p.y;
`)
	want := []string{"3", "4"}
	if got := lines(out); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestForDesugaring(t *testing.T) {
	out := runSource(t, `
var s = 0;
for (var i = 1; i <= 3; i = i + 1) s = s + i;
print s;
`)
	want := []string{"6"}
	if got := lines(out); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestShortCircuitReturnsOperandNotBoolean(t *testing.T) {
	out := runSource(t, `
print nil or "x";
print "a" and 2;
`)
	want := []string{"x", "2"}
	if got := lines(out); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStringConcatenationAndTypeError(t *testing.T) {
	out := runSource(t, `print "a" + "b";`)
	if strings.TrimRight(out, "\n") != "ab" {
		t.Fatalf("got %q, want ab", out)
	}

	tokens, _ := lexer.New(`print "a" + 1;`).ScanTokens()
	stmts, _ := parser.New(tokens).Parse()
	resolution, _ := resolver.Resolve(stmts)
	var buf bytes.Buffer
	interp := New(&buf)
	if err := interp.Run(stmts, resolution); err == nil {
		t.Fatal("expected a runtime error mixing string and number with +")
	}
}

func TestDivisionByZero(t *testing.T) {
	tokens, _ := lexer.New(`print 1 / 0;`).ScanTokens()
	stmts, _ := parser.New(tokens).Parse()
	resolution, _ := resolver.Resolve(stmts)
	var buf bytes.Buffer
	interp := New(&buf)
	err := interp.Run(stmts, resolution)
	if err == nil || !strings.Contains(err.Error(), "Attempt to divide") {
		t.Fatalf("got %v, want an error containing 'Attempt to divide'", err)
	}
}

func TestFunctionWithoutReturnYieldsNil(t *testing.T) {
	out := runSource(t, `
fun f() { var x = 1; }
print f();
`)
	if strings.TrimRight(out, "\n") != "nil" {
		t.Fatalf("got %q, want nil", out)
	}
}

func TestBareReturnInInitializerYieldsInstance(t *testing.T) {
	out := runSource(t, `
class A {
  init() { return; }
}
print A();
`)
	if !strings.HasPrefix(strings.TrimRight(out, "\n"), "<A instance>") {
		t.Fatalf("got %q, want a printed instance", out)
	}
}

func TestMethodRetrievedTwiceBindsSameInstance(t *testing.T) {
	out := runSource(t, `
class Counter {
  init() { this.n = 0; }
  inc() { this.n = this.n + 1; return this.n; }
}
var c = Counter();
var bound1 = c.inc;
var bound2 = c.inc;
print bound1();
print bound2();
`)
	want := []string{"1", "2"}
	if got := lines(out); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v (both bound methods share the instance's state)", got, want)
	}
}

func TestMaxCallDepthRaisesRuntimeError(t *testing.T) {
	tokens, _ := lexer.New(`
fun recurse(n) { return recurse(n + 1); }
recurse(0);
`).ScanTokens()
	stmts, _ := parser.New(tokens).Parse()
	resolution, _ := resolver.Resolve(stmts)

	var buf bytes.Buffer
	interp := New(&buf)
	interp.MaxCallDepth = 50
	err := interp.Run(stmts, resolution)
	if err == nil || !strings.Contains(err.Error(), "Stack overflow") {
		t.Fatalf("got %v, want a 'Stack overflow' runtime error", err)
	}
}

func TestZeroMaxCallDepthIsUnbounded(t *testing.T) {
	out := runSource(t, `
fun countdown(n) {
  if (n <= 0) { print "done"; return; }
  countdown(n - 1);
}
countdown(300);
`)
	if strings.TrimRight(out, "\n") != "done" {
		t.Fatalf("got %q, want \"done\" (MaxCallDepth 0 must not limit recursion)", out)
	}
}
