// Command lox-compare runs a script against this repo's `lox run` and
// against a reference interpreter, then diffs stdout, exit code, and
// stderr — the same two-interpreter comparison harness the teacher repo's
// reference Lox port uses for conformance testing, ported here to use
// pmezard/go-difflib for the diff instead of hand-rolled line spacing.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

type result struct {
	stdout   string
	stderr   string
	exitCode int
}

func run(command string, args ...string) result {
	cmd := exec.Command(command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), exitCode: exitCode}
}

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: lox-compare <reference-binary> <lox-binary> <script> [script...]")
		os.Exit(1)
	}

	reference, loxBin, scripts := os.Args[1], os.Args[2], os.Args[3:]

	failures := 0
	for _, script := range scripts {
		want := run(reference, script)
		got := run(loxBin, "run", script)

		if want == got {
			fmt.Printf("  [%s] %s\n", color.GreenString("passed"), script)
			continue
		}

		failures++
		fmt.Printf("  [%s] %s\n", color.RedString("failed"), script)
		if want.exitCode != got.exitCode {
			fmt.Printf("    exit code: expected %d, got %d\n", want.exitCode, got.exitCode)
		}
		printDiff("stdout", want.stdout, got.stdout)
		printDiff("stderr", want.stderr, got.stderr)
	}

	if failures > 0 {
		fmt.Printf("\n%d of %d scripts differed from the reference\n", failures, len(scripts))
		os.Exit(1)
	}
}

func printDiff(label, expected, actual string) {
	if expected == actual {
		return
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected " + label,
		ToFile:   "actual " + label,
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Print(strings.TrimRight(text, "\n") + "\n")
}
