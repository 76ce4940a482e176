package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := c.newCache(ctx, cfg, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Cache backend %q cannot be cleared", cfg.Cache.Backend)
				return nil
			}

			spinner := newSpinner(ctx, "Clearing cache...")
			spinner.Start()
			if err := clearer.Clear(ctx); err != nil {
				spinner.StopWithError("Clear failed")
				return fmt.Errorf("clear cache: %w", err)
			}
			spinner.StopWithSuccess("Cache cleared")
			printDetail("Backend: %s", cfg.Cache.Backend)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cc, err := cfg.cacheConfig()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			out := cmd.OutOrStdout()
			switch cc.Backend {
			case cache.BackendRedis:
				fmt.Fprintf(out, "redis://%s\n", cc.RedisAddr)
			case cache.BackendMongo:
				fmt.Fprintf(out, "%s (database %s)\n", cc.MongoURI, cc.MongoDatabase)
			case cache.BackendNone:
				fmt.Fprintln(out, "none")
			default:
				fmt.Fprintln(out, cc.Dir)
			}
			return nil
		},
	}
}
