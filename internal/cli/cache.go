package cli

import (
	"github.com/spf13/cobra"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/cache"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/config"
)

// cacheCommand creates the cache management command. It operates on the
// shared redis backend; the in-process memory cache dies with the server
// and has nothing to manage from outside.
func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the shared result cache",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")

	cmd.AddCommand(c.cacheClearCommand(&configPath))
	cmd.AddCommand(c.cachePingCommand(&configPath))

	return cmd
}

// redisStore loads the config and connects to the configured redis backend.
func redisStore(configPath string) (*cache.RedisStore, bool, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, false, err
	}
	if cfg.Cache.Backend != config.BackendRedis {
		return nil, false, nil
	}
	return cache.NewRedisStore(cfg.Cache.RedisAddr), true, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached lookup results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, isRedis, err := redisStore(*configPath)
			if err != nil {
				return err
			}
			if !isRedis {
				printInfo("Configured cache is in-process; nothing to clear")
				return nil
			}
			defer store.Close()

			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", count)
			return nil
		},
	}
}

// cachePingCommand creates the "cache ping" subcommand.
func (c *CLI) cachePingCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the cache backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, isRedis, err := redisStore(*configPath)
			if err != nil {
				return err
			}
			if !isRedis {
				printInfo("Configured cache is in-process; always reachable")
				return nil
			}
			defer store.Close()

			if err := store.Ping(cmd.Context()); err != nil {
				printError("Cache unreachable: %v", err)
				return err
			}
			printSuccess("Cache reachable")
			return nil
		},
	}
}
