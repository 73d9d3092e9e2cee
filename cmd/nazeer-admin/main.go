package main

import (
	"fmt"
	"os"

	"github.com/faizrashid/nazeer/internal/admin/commands"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nazeer-admin",
		Short: "Nazeer administration CLI tool",
		Long: `nazeer-admin is the administration tool for the Nazeer legal retrieval engine.

It provides commands for managing database migrations, workers, cache,
the statute corpus, the knowledge-base chunk store, and other
administrative tasks.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "configs/default.yaml", "Config file path")
	rootCmd.PersistentFlags().StringP("env", "e", "development", "Environment (development, staging, production)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	// Add command groups
	rootCmd.AddCommand(commands.NewMigrateCmd())
	rootCmd.AddCommand(commands.NewWorkerCmd())
	rootCmd.AddCommand(commands.NewCacheCmd())
	rootCmd.AddCommand(commands.NewQueueCmd())
	rootCmd.AddCommand(commands.NewHealthCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
	rootCmd.AddCommand(commands.NewMetricsCmd())
	rootCmd.AddCommand(commands.NewBackupCmd())
	rootCmd.AddCommand(commands.NewStatuteCmd())
	rootCmd.AddCommand(commands.NewKBCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
