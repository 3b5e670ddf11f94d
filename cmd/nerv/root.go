package main

import (
	"fmt"
	"os"

	"github.com/aretw0/nerv/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nerv",
	Short: "nerv replays and inspects nested observable data models",
	Long: `nerv loads YAML documents into trees of observable nodes, replays scripts
of operations against them and traces the change events they fire.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("color", "auto", "Colorize output (auto, always, never)")
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	level, _ := cmd.Flags().GetString("log-level")
	color, _ := cmd.Flags().GetString("color")
	return cli.Options{
		LogLevel: level,
		Color:    color,
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
	}
}
