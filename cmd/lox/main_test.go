package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/cwbudde/lox/cmd/lox/cmd"
)

// TestMain lets the compiled test binary double as the `lox` command
// itself: testscript.RunMain re-execs it as a subprocess whenever a script
// under testdata/script invokes `lox ...`, so every scenario below runs
// against the real CLI entry point rather than an in-process stand-in.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"lox": runLox,
	}))
}

func runLox() int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// TestScripts drives cmd/lox end to end: usage errors, exit codes, and
// REPL line-by-line behavior, the scenarios spec.md §8 calls out as
// end-to-end rather than package-internal.
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
