package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "Lox interpreter",
	Long: `lox is a tree-walking interpreter for Lox, a small dynamically-typed
scripting language with closures, classes, and single inheritance.

Run a script, start an interactive prompt, or inspect any stage of the
scan -> parse -> resolve -> interpret pipeline individually.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runCmd.RunE(c, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().Bool("no-color", false, "disable colorized diagnostics")
	rootCmd.PersistentFlags().Bool("trace", false, "log each executed statement and call entry/exit to stderr")
	rootCmd.PersistentFlags().String("rc", "", "path to a .loxrc.yaml config file (defaults to ./.loxrc.yaml)")

	rootCmd.AddCommand(runCmd, tokenizeCmd, parseCmd, resolveCmd)
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
