package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/lox/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <script>",
	Short: "Scan a script and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		noColor, _ := c.Flags().GetBool("no-color")
		useColor := !noColor && isatty.IsTerminal(os.Stderr.Fd())

		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		tokens, errs := lexer.New(string(source)).ScanTokens()
		if len(errs) > 0 {
			printCompilerErrors(errs, useColor)
			os.Exit(65)
		}
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		return nil
	},
}
