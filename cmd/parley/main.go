package main

import (
	"os"

	"github.com/spf13/cobra"

	"parley/internal/interfaces/cli/migrate"
	"parley/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parley",
		Short: "Parley - a support desk service",
		Long:  `Parley runs the support desk HTTP API: one open ticket per user, admin replies, broadcasts, and best-effort translation.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
