package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/internal/cache"
	"github.com/cinedex/cinedex/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache maintenance",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired entries from the sqlite cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if cfg.Cache.Backend != "sqlite" {
			return fmt.Errorf("cache backend is %q, prune only applies to sqlite", cfg.Cache.Backend)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Server.LogLevel),
		}))

		store, err := cache.OpenSQLite(cfg.Cache.SQLite.Path, logger.With("component", "cache"))
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer func() { _ = store.Close() }()

		n, err := store.Prune(cmd.Context())
		if err != nil {
			return fmt.Errorf("prune: %w", err)
		}

		fmt.Printf("pruned %d expired entries\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePruneCmd)
}
