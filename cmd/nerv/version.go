package main

import (
	"fmt"

	"github.com/aretw0/nerv"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nerv",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nerv version %s\n", nerv.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
