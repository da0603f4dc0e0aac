package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/lox/internal/lexer"
	"github.com/cwbudde/lox/internal/parser"
	"github.com/cwbudde/lox/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <script>",
	Short: "Parse and resolve a script, reporting any static errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		noColor, _ := c.Flags().GetBool("no-color")
		useColor := !noColor && isatty.IsTerminal(os.Stderr.Fd())

		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		tokens, scanErrs := lexer.New(string(source)).ScanTokens()
		if len(scanErrs) > 0 {
			printCompilerErrors(scanErrs, useColor)
			os.Exit(65)
		}

		stmts, parseErrs := parser.New(tokens).Parse()
		if len(parseErrs) > 0 {
			printCompilerErrors(parseErrs, useColor)
			os.Exit(65)
		}

		_, resolveErrs := resolver.Resolve(stmts)
		if len(resolveErrs) > 0 {
			printCompilerErrors(resolveErrs, useColor)
			os.Exit(65)
		}

		fmt.Println("OK")
		return nil
	},
}
