package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "library-system",
	Short: "Library management backend",
	Long: `Library management backend: catalog, loans, reservations, reviews
and user accounts behind a role-gated REST API.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
