package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simtree",
	Short: "An AST-based method-level duplicate code detector",
	Long: `simtree finds near-duplicate methods in a source tree using tree edit
distance (APTED) over normalized ASTs, ranked by refactoring impact.`,
}

func init() {
	rootCmd.AddCommand(NewDetectCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
