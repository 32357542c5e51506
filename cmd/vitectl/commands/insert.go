package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vitelabs/vitehnsw/codec"
	"github.com/vitelabs/vitehnsw/internal/seedio"
)

var insertCmd = &cobra.Command{
	Use:   "insert <graph.vite> <vectors.json>",
	Short: "Insert a batch of vectors into an existing graph, saving it back in place",
	Long: `Insert loads the graph whole, inserts every vector in vectors.json in
order, and re-saves the entire file. There is no incremental on-disk
append; each insert rewrites graph.vite from scratch.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath, vectorsPath := args[0], args[1]
		logger := slog.Default().With("command", "insert")

		g, err := codec.Load(graphPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", graphPath, err)
		}

		vectors, err := seedio.ReadVectors(vectorsPath)
		if err != nil {
			return err
		}

		for i, v := range vectors {
			if err := g.Insert(v); err != nil {
				return fmt.Errorf("inserting vector %d: %w", i, err)
			}
		}

		if err := codec.Save(g, graphPath); err != nil {
			return fmt.Errorf("saving %s: %w", graphPath, err)
		}

		logger.Info("vectors inserted", "graph", graphPath, "inserted", len(vectors), "node_count", g.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
