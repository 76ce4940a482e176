package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/render"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	depth       int
	derivations bool
	repetition  string
	lowMemory   bool
	formats     string
	output      string // output file (single format) or base path (multiple)
	noCache     bool
	refresh     bool
	verify      bool // replay every recorded derivation
	browse      bool // open the interactive browser
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		depth:      pipeline.DefaultDepth,
		repetition: pipeline.DefaultRepetition,
	}

	cmd := &cobra.Command{
		Use:   "generate [grammar-file]",
		Short: "Enumerate the strings of a grammar up to a depth",
		Long: `Enumerate the terminal strings a grammar derives in at most --depth leftmost
rewrites. Without a grammar file the built-in sample grammar is used.

Repetition modes:
  disabled  every string once (default)
  enabled   every string once per derivation
  counted   every string with its number of derivations

With --derivations every string is listed with the rewrite sequences that
produce it; --low-memory drops the rewrite positions from those sequences.`,
		Example: `  cfggen generate -d 8
  cfggen generate grammar.toml --repetition counted
  cfggen generate grammar.toml --derivations -f text,svg -o out/grammar`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runGenerate(ctx, path, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "maximum number of leftmost rewrites")
	cmd.Flags().BoolVar(&opts.derivations, "derivations", false, "record the derivations of every string")
	cmd.Flags().StringVar(&opts.repetition, "repetition", opts.repetition, "repetition mode: disabled, enabled, counted")
	cmd.Flags().BoolVar(&opts.lowMemory, "low-memory", false, "drop rewrite positions from derivations")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): text (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when a cached result exists")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "replay every derivation and check it yields its string")
	cmd.Flags().BoolVar(&opts.browse, "browse", false, "browse the result interactively")
	registerGenerateCompletions(cmd)

	return cmd
}

// runGenerate runs the pipeline and writes its artifacts.
func (c *CLI) runGenerate(ctx context.Context, path string, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := render.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	toStdout := opts.output == "" && len(formats) == 1 && formats[0] != render.FormatSVG && !opts.browse

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if !toStdout {
		spinner = newSpinner(ctx, fmt.Sprintf("Enumerating to depth %d...", opts.depth))
		spinner.Start()
	}

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		GrammarPath: path,
		Depth:       opts.depth,
		Derivations: opts.derivations,
		Repetition:  opts.repetition,
		LowMemory:   opts.lowMemory,
		Refresh:     opts.refresh,
		Formats:     names,
		Logger:      logger,
	})
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Generation failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Enumerated %d strings at depth %d", res.Stats.Strings, opts.depth))

	if opts.verify {
		n, err := verify(res.Grammar, res.Generation)
		if err != nil {
			return err
		}
		logger.Info("verified derivations", "paths", n)
	}

	if toStdout {
		_, err := uiOut.Write(res.Artifacts[names[0]])
		return err
	}

	if err := writeArtifacts(res, formats, opts.output, path); err != nil {
		return err
	}
	if opts.browse {
		return browse(ctx, res.Generation)
	}
	return nil
}

// writeArtifacts writes every rendered format to disk. A single format goes
// to output verbatim when set; otherwise files are named base.ext.
func writeArtifacts(res *pipeline.Result, formats []render.Format, output, input string) error {
	printSuccess("Generated %s", StyleHighlight.Render(string(res.Generation.Shape)))
	printStats(res.Stats.Strings, res.Stats.Total, res.CacheInfo.GenerateHit)

	base := basePath(output, input)
	for _, f := range formats {
		dst := base + "." + f.Ext()
		if len(formats) == 1 && output != "" {
			dst = output
		}
		if err := os.WriteFile(dst, res.Artifacts[string(f)], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
		printFile(dst)
	}
	return nil
}

// verify replays every recorded derivation of r and returns how many were
// checked. Results without derivations have nothing to check.
func verify(g grammar.Grammar, r *derive.Result) (int, error) {
	if r.Shape != derive.ShapeDerivations {
		return 0, nil
	}
	if r.LowMemory() {
		return verifyPaths(g, r.Productions)
	}
	return verifyPaths(g, r.Steps)
}

func verifyPaths[R derive.Record](g grammar.Grammar, d derive.Derivations[R]) (int, error) {
	n := 0
	for _, s := range d.Strings() {
		for _, p := range d[s] {
			got, err := derive.Replay(g, p)
			if err != nil {
				return n, fmt.Errorf("verify %q: %w", s, err)
			}
			if got != s {
				return n, errors.New(errors.ErrCodeInternal, "derivation of %q replays to %q", s, got)
			}
			n++
		}
	}
	return n, nil
}
