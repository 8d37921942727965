// Package cli implements the auctiond command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var confPath string

var rootCmd = &cobra.Command{
	Use:     "auctiond",
	Short:   "Reverse Dutch auction settlement daemon",
	Long:    `auctiond runs a reverse Dutch auction settlement core: sellers escrow lots, prices decay linearly over time, and the first sufficient bid settles atomically.`,
	Version: "0.1.0",
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "conf", "", "path to TOML configuration file")
}
