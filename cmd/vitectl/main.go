// Command vitectl builds, queries, and inspects graph index files from
// the command line.
package main

import (
	"fmt"
	"os"

	"github.com/vitelabs/vitehnsw/cmd/vitectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
