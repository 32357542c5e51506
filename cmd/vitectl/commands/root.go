package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vitelabs/vitehnsw/internal/obs"
)

var logFormat string

var rootCmd = &cobra.Command{
	Use:   "vitectl",
	Short: "Build, query, and inspect HNSW graph index files",
	Long: `vitectl drives the graph index engine from the command line.

Commands:
  build          - create a new graph index from a seed vector
  insert         - insert a batch of vectors into an existing graph
  random-insert  - bulk-insert pseudo-random vectors, for load testing
  search         - run a k-NN query against a graph
  inspect        - print summary statistics about a graph file`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		obs.Init(obs.Config{Level: slog.LevelInfo, Format: logFormat})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
}

// Execute runs the root command, returning any error raised by the
// selected subcommand.
func Execute() error {
	return rootCmd.Execute()
}
