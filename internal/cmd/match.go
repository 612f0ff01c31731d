package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pkt.systems/dbug"
)

func newMatchCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "match [NAMESPACE...]",
		Short: "Report whether namespaces are enabled",
		Long: `Report whether each namespace is enabled by the patterns and which pattern
decided it. Namespaces are read one per line from stdin when none are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 1 if any namespace is disabled")
	return cmd
}

func runMatch(cmd *cobra.Command, args []string, strict bool) error {
	raw, _ := patternsFlag(cmd)
	set := dbug.ParsePatterns(raw)

	names := args
	if len(names) == 0 {
		var err error
		names, err = readNames(cmd)
		if err != nil {
			return err
		}
	}
	trace.Logf("matching %d namespaces against %q", len(names), set.String())

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	disabled := 0
	for _, name := range names {
		d := set.Explain(name)
		if !d.Enabled {
			disabled++
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, d)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if strict && disabled > 0 {
		trace.Logf("%d of %d namespaces disabled", disabled, len(names))
		return NewExitCodeError(1)
	}
	return nil
}

func readNames(cmd *cobra.Command) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read namespaces: %w", err)
	}
	return names, nil
}
