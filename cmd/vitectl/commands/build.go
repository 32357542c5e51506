package commands

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vitelabs/vitehnsw/codec"
	"github.com/vitelabs/vitehnsw/graph"
	"github.com/vitelabs/vitehnsw/internal/seedio"
)

var (
	buildOut            string
	buildM              int
	buildMMax           int
	buildMMax0          int
	buildEfConstruction int
)

var buildCmd = &cobra.Command{
	Use:   "build <seed.json>",
	Short: "Create a new graph index from a seed vector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID := uuid.New().String()
		logger := slog.Default().With("run_id", runID, "command", "build")

		seed, err := seedio.ReadVector(args[0])
		if err != nil {
			return err
		}

		g, err := graph.New(seed, buildM, buildMMax, buildMMax0, buildEfConstruction)
		if err != nil {
			return fmt.Errorf("building graph: %w", err)
		}

		if err := codec.Save(g, buildOut); err != nil {
			return fmt.Errorf("saving %s: %w", buildOut, err)
		}

		logger.Info("graph built", "dimension", g.Dimension, "out", buildOut)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "path to write the new graph file (required)")
	buildCmd.Flags().IntVar(&buildM, "m", 16, "target node degree")
	buildCmd.Flags().IntVar(&buildMMax, "mmax", 16, "max neighbors per node above layer 0")
	buildCmd.Flags().IntVar(&buildMMax0, "mmax0", 32, "max neighbors per node at layer 0")
	buildCmd.Flags().IntVar(&buildEfConstruction, "ef-construction", 200, "candidate list width during insertion")
	_ = buildCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(buildCmd)
}
