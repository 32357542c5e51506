package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vitelabs/vitehnsw/codec"
	"github.com/vitelabs/vitehnsw/internal/seedio"
)

var (
	searchK  int
	searchEf int
)

var searchCmd = &cobra.Command{
	Use:   "search <graph.vite> <query.json>",
	Short: "Run a k-nearest-neighbor query against a graph",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath, queryPath := args[0], args[1]
		logger := slog.Default().With("command", "search")

		g, err := codec.Load(graphPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", graphPath, err)
		}

		query, err := seedio.ReadVector(queryPath)
		if err != nil {
			return err
		}

		results, err := g.KNNSearch(query, searchK, searchEf)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}

		for rank, r := range results {
			fmt.Printf("%d\tindex=%d\tdistance=%.6f\n", rank+1, r.Index, r.Distance)
		}
		logger.Info("search complete", "graph", graphPath, "k", searchK, "ef", searchEf, "results", len(results))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchK, "k", 10, "number of nearest neighbors to return")
	searchCmd.Flags().IntVar(&searchEf, "ef", 50, "candidate list width during search")

	rootCmd.AddCommand(searchCmd)
}
