package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/dbug"
)

func newDemoCmd() *cobra.Command {
	var pause time.Duration
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print sample output for the label and something namespaces",
		Long: `Print sample debug output. Try:

  DEBUG='*' dbug demo
  DEBUG='*,-label' dbug demo
  dbug demo --patterns 'label*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := dbug.NewObservedWriter(cmd.OutOrStdout(), nil)
			reg := demoRegistry(cmd, out)
			defer reg.Close()
			runDemo(reg, pause)
			if stats := out.Stats(); stats.Lost > 0 {
				return fmt.Errorf("%d of %d debug lines lost", stats.Lost, stats.Lines)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&pause, "pause", 158*time.Millisecond, "delay before the third label line")
	return cmd
}

func demoRegistry(cmd *cobra.Command, out io.Writer) *dbug.Registry {
	raw, explicit := patternsFlag(cmd)
	if explicit {
		return dbug.NewRegistry(dbug.Options{Patterns: raw, Writer: out})
	}
	return dbug.RegistryFromEnv(
		dbug.WithEnvWriter(out),
		dbug.WithEnvErrorWriter(cmd.ErrOrStderr()),
	)
}

func runDemo(reg *dbug.Registry, pause time.Duration) {
	type tester struct {
		Thing string
	}
	t := tester{Thing: "is a hand"}

	debug := reg.New("label")
	debug.Log("hello world")
	debug.Log("hello world 2")

	time.Sleep(pause)
	debug.Logf("hello world 3: %+v", t)
	debug.Log("hello world 4")

	extended := debug.Extend("extended")
	extended.Log("extended hello world")
	extended.Extend("deep").Log("more")

	something := reg.New("something")
	log := something.Func()
	log("hello from something")

	again := something.Extend("extended_again").Func()
	again("extended hello world")
}
