package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitelabs/vitehnsw/codec"
)

var inspectVerbose bool

// inspectCmd prints summary statistics about a graph file. It is a
// scaled-down stand-in for the original's per-node dump: useful on a
// handful of nodes, unusable at the scale this tool is meant to run at,
// so by default it reports aggregates and only lists individual nodes
// with --verbose.
var inspectCmd = &cobra.Command{
	Use:   "inspect <graph.vite>",
	Short: "Print summary statistics about a graph file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath := args[0]
		g, err := codec.Load(graphPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", graphPath, err)
		}

		fmt.Printf("dimension:\t\t%d\n", g.Dimension)
		fmt.Printf("nodes:\t\t\t%d\n", g.Len())
		fmt.Printf("layer_count:\t\t%d\n", g.LayerCount)
		fmt.Printf("entrance:\t\t%d\n", g.Entrance)
		fmt.Printf("m_l:\t\t\t%v\n", g.ML)
		fmt.Printf("m_max:\t\t\t%d\n", g.MMax)
		fmt.Printf("m_max0:\t\t\t%d\n", g.MMax0)
		fmt.Printf("ef_construction:\t%d\n", g.EfConstruction)

		degreeSum := 0
		for _, n := range g.Nodes {
			for _, friends := range n.Friends {
				degreeSum += len(friends)
			}
		}
		if g.Len() > 0 {
			fmt.Printf("average degree:\t\t%.2f\n", float64(degreeSum)/float64(g.Len()))
		}

		if inspectVerbose {
			for _, n := range g.Nodes {
				star := " "
				if n.Index == g.Entrance {
					star = "*"
				}
				fmt.Printf("%s node %d, layer %d ", star, n.Index, n.MaxLevel)
				for lc, friends := range n.Friends {
					fmt.Printf("friends%d: %v ", lc, friends)
				}
				fmt.Println()
			}
		}

		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectVerbose, "verbose", false, "print every node's adjacency lists")

	rootCmd.AddCommand(inspectCmd)
}
