package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/render"
)

// demoRun is one configuration of the demonstration.
type demoRun struct {
	title string
	opts  derive.Options
}

// demoRuns lists the configurations in the order they are printed.
var demoRuns = []demoRun{
	{"Strings", derive.Options{Repetition: derive.Enabled}},
	{"With derivations, without nonterminal index", derive.Options{Derivations: true, Repetition: derive.Enabled, LowMemory: true}},
	{"With one derivation per string", derive.Options{Derivations: true, Repetition: derive.Disabled}},
	{"Strings with count", derive.Options{Repetition: derive.Counted}},
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	depth := pipeline.DefaultDepth

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the demonstration on the sample grammar",
		Long: `Enumerate the sample grammar

  S -> 0A | 1B
  A -> 0AA | 1S | 1
  B -> 1BB | 0S | 0

in four configurations: every string once per derivation, all derivations
without rewrite positions, one derivation per string, and ambiguity counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), depth)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", depth, "maximum number of leftmost rewrites")

	return cmd
}

func runDemo(w io.Writer, depth int) error {
	g := grammar.Demo()
	for i, run := range demoRuns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		res, err := derive.Generate(g, depth, run.opts)
		if err != nil {
			return fmt.Errorf("%s: %w", run.title, err)
		}
		fmt.Fprintln(w, StyleTitle.Render(run.title+":"))
		if err := render.WriteText(w, res); err != nil {
			return err
		}
	}
	return nil
}
