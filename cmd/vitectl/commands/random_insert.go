package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitelabs/vitehnsw/codec"
	"github.com/vitelabs/vitehnsw/internal/fixture"
)

var (
	randomInsertCount int
	randomInsertSeed  uint64
)

// randomInsertCmd bulk-inserts pseudo-random vectors into a graph,
// reproducing in idiomatic Go/cobra form the random-vector load loop the
// original demo program ran before its interactive search loop.
var randomInsertCmd = &cobra.Command{
	Use:   "random-insert <graph.vite>",
	Short: "Bulk-insert pseudo-random vectors into an existing graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath := args[0]
		logger := slog.Default().With("command", "random-insert")

		g, err := codec.Load(graphPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", graphPath, err)
		}

		rng := fixture.NewSeededRand(randomInsertSeed)
		vectors := fixture.RandomVectors(rng, randomInsertCount, g.Dimension)

		start := time.Now()
		for i, v := range vectors {
			if err := g.Insert(v); err != nil {
				return fmt.Errorf("inserting vector %d: %w", i, err)
			}
		}
		elapsed := time.Since(start)

		if err := codec.Save(g, graphPath); err != nil {
			return fmt.Errorf("saving %s: %w", graphPath, err)
		}

		logger.Info("random insert complete",
			"graph", graphPath,
			"inserted", len(vectors),
			"node_count", g.Len(),
			"elapsed", elapsed,
			"vectors_per_second", float64(len(vectors))/elapsed.Seconds(),
		)
		return nil
	},
}

func init() {
	randomInsertCmd.Flags().IntVarP(&randomInsertCount, "count", "n", 1000, "number of random vectors to insert")
	randomInsertCmd.Flags().Uint64Var(&randomInsertSeed, "seed", 42, "seed for the pseudo-random vector generator")

	rootCmd.AddCommand(randomInsertCmd)
}
