// Package cmd implements the CLI commands for dbug.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/dbug"
)

// trace is the CLI's own debug output, enabled with DEBUG=dbug:cli.
var trace = dbug.New("dbug:cli")

// NewRootCmd builds the dbug command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dbug",
		Short: "Inspect DEBUG namespace patterns",
		Long: `dbug evaluates DEBUG enable patterns without running the instrumented program.

Patterns are comma or space separated. "app" enables exactly app, "app*" every
namespace starting with app, "*" everything, and a leading "-" skips matching
namespaces whatever else enables them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("patterns", "", "enable patterns (defaults to $DEBUG)")
	root.AddCommand(newMatchCmd(), newPatternsCmd(), newDemoCmd())
	return root
}

// Execute runs the root command and returns any error.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	var exitErr *ExitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		root.PrintErrln("Error:", err)
	}
	return err
}

// patternsFlag returns --patterns when given, otherwise $DEBUG.
func patternsFlag(cmd *cobra.Command) (string, bool) {
	flag := cmd.Flags().Lookup("patterns")
	if flag != nil && flag.Changed {
		return flag.Value.String(), true
	}
	return os.Getenv(dbug.DefaultEnvPrefix), false
}
