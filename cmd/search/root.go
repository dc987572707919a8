package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fo-search",
		Short:         "Query the FO-Index semantic search from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("log-level", "warn", "log level written to stderr (debug, info, warn, error)")

	cmd.AddCommand(newSearchCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server name and version",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := envOr(config.EnvServerName, config.DefaultServerName)
			version := envOr(config.EnvServerVersion, config.DefaultServerVersion)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, version)
			return err
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
