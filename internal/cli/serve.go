package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/FlyingWolFox/cfg-string-generator/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
// Unset flags fall back to the [server] section of the config file.
type serveOpts struct {
	addr       string
	maxDepth   int
	grammarDir string
	noCache    bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve grammar enumeration over HTTP.

  GET  /healthz
  GET  /v1/grammars/demo
  GET  /v1/grammars/{name}   (with --grammar-dir)
  POST /v1/generate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				opts.addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("max-depth") {
				opts.maxDepth = cfg.Server.MaxDepth
			}

			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithAddr(opts.addr),
				server.WithMaxDepth(opts.maxDepth),
				server.WithGrammarDir(opts.grammarDir),
				server.WithLogger(c.Logger),
			)
			ln, err := srv.Listen()
			if err != nil {
				return err
			}
			printSuccess("Serving on %s", StyleHighlight.Render(srv.Addr()))
			printKeyValue("max depth", StyleNumber.Render(strconv.Itoa(opts.maxDepth)))
			if opts.grammarDir != "" {
				printKeyValue("grammars", opts.grammarDir)
			}
			return srv.Run(ctx, ln)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultServerAddr, "listen address")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "largest depth a request may ask for (0: no limit)")
	cmd.Flags().StringVar(&opts.grammarDir, "grammar-dir", "", "directory of grammar documents served by name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}
