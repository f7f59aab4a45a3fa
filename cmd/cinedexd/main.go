package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "cinedexd",
	Short: "Read API daemon for the cinedex media catalog",
	Long: `cinedexd - read API daemon for the cinedex media catalog

Serves film, genre and person lookups over HTTP, backed by a
search index with an optional response cache.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(configPath)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cinedexd {{.Version}}\n")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
}
