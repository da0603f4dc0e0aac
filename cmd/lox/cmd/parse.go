package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/lexer"
	"github.com/cwbudde/lox/internal/parser"
)

func init() {
	parseCmd.Flags().Bool("dump-ast-json", false, "print the AST as JSON instead of its S-expression form")
	parseCmd.Flags().String("query", "", "gjson path evaluated against the AST JSON (implies --dump-ast-json)")
}

var parseCmd = &cobra.Command{
	Use:   "parse <script>",
	Short: "Parse a script and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		noColor, _ := c.Flags().GetBool("no-color")
		useColor := !noColor && isatty.IsTerminal(os.Stderr.Fd())

		dumpJSON, _ := c.Flags().GetBool("dump-ast-json")
		query, _ := c.Flags().GetString("query")

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

		if query != "" {
			doc, err := ast.ToJSON(stmts)
			if err != nil {
				return fmt.Errorf("building AST JSON: %w", err)
			}
			fmt.Println(gjson.Get(doc, query).String())
			return nil
		}

		if dumpJSON {
			doc, err := ast.ToJSON(stmts)
			if err != nil {
				return fmt.Errorf("building AST JSON: %w", err)
			}
			fmt.Println(doc)
			return nil
		}

		for _, stmt := range stmts {
			fmt.Println(stmt.String())
		}
		return nil
	},
}
