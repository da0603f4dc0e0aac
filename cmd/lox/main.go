// Command lox runs the Lox interpreter: a script file, an interactive
// prompt, or one of the pipeline-inspection subcommands (tokenize, parse,
// resolve).
package main

import (
	"os"

	"github.com/cwbudde/lox/cmd/lox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
