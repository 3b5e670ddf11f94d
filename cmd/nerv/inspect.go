package main

import (
	"github.com/aretw0/nerv/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document.yaml>",
	Short: "Print a report of the nodes and values in a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		return cli.RunInspect(cli.InspectOptions{
			Options:      globalOptions(cmd),
			DocumentPath: args[0],
			Raw:          raw,
		})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("raw", false, "Print the markdown source instead of rendering it")
}
