package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pkt.systems/dbug"
)

type fragmentView struct {
	Pattern string `yaml:"pattern"`
	Literal string `yaml:"literal"`
	Prefix  bool   `yaml:"prefix"`
}

type patternSetView struct {
	Raw       string         `yaml:"raw"`
	Canonical string         `yaml:"canonical"`
	Enable    []fragmentView `yaml:"enable"`
	Skip      []fragmentView `yaml:"skip"`
}

func newPatternSetView(set dbug.PatternSet) patternSetView {
	view := patternSetView{
		Raw:       set.Raw,
		Canonical: set.String(),
		Enable:    []fragmentView{},
		Skip:      []fragmentView{},
	}
	for _, p := range set.Enable {
		view.Enable = append(view.Enable, fragmentView{Pattern: p.String(), Literal: p.Literal, Prefix: p.Prefix})
	}
	for _, p := range set.Skip {
		view.Skip = append(view.Skip, fragmentView{Pattern: "-" + p.String(), Literal: p.Literal, Prefix: p.Prefix})
	}
	return view
}

func newPatternsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show how the patterns are parsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPatterns(cmd, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text|yaml)")
	return cmd
}

func runPatterns(cmd *cobra.Command, output string) error {
	raw, _ := patternsFlag(cmd)
	view := newPatternSetView(dbug.ParsePatterns(raw))
	out := cmd.OutOrStdout()

	switch output {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("encode patterns: %w", err)
		}
		return enc.Close()
	case "text":
		if len(view.Enable) == 0 {
			fmt.Fprintln(out, "no enable patterns: every namespace is disabled")
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, f := range view.Enable {
			fmt.Fprintf(tw, "enable\t%s\t%s\n", f.Pattern, matchKind(f.Prefix))
		}
		for _, f := range view.Skip {
			fmt.Fprintf(tw, "skip\t%s\t%s\n", f.Pattern, matchKind(f.Prefix))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want text or yaml)", output)
	}
}

func matchKind(prefix bool) string {
	if prefix {
		return "prefix"
	}
	return "exact"
}
