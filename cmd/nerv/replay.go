package main

import (
	"github.com/aretw0/nerv/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <document.yaml> <script.yaml>",
	Short: "Apply a script to a document and trace the fired events",
	Long: `Loads the document into a tree of nodes, applies every operation of the
script in order, prints each event fired on the root (or on every node with
--trace-all) and finally prints the resulting document.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		traceAll, _ := cmd.Flags().GetBool("trace-all")
		stats, _ := cmd.Flags().GetBool("stats")
		quiet, _ := cmd.Flags().GetBool("quiet")
		diff, _ := cmd.Flags().GetBool("diff")

		return cli.RunReplay(cli.ReplayOptions{
			Options:      globalOptions(cmd),
			DocumentPath: args[0],
			ScriptPath:   args[1],
			TraceAll:     traceAll,
			Stats:        stats,
			Diff:         diff,
			Quiet:        quiet,
		})
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Bool("trace-all", false, "Trace events on every nested node, not only the root")
	replayCmd.Flags().Bool("stats", false, "Print event counts by kind after the replay")
	replayCmd.Flags().Bool("diff", false, "Print the changes between the initial and final document")
	replayCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
