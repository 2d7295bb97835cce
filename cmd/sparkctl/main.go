// cmd/sparkctl/main.go
//
// Offline operations CLI for the Luvora message pool.
//
// Subcommands
// -----------
//   • validate – parse and validate a pool file, print bucket counts.
//   • stats    – sample the selector over many dates and compare the
//     observed rarity mix against the shipped target weights.
//   • seogen   – materialize the static category pages for one date.
//
// All subcommands are pure readers; nothing here mutates the pool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "sparkctl",
	Short:         "Pool tooling for Luvora",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(validateCmd, statsCmd, seogenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
