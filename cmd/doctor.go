package cmd

import (
	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/cli/handlers"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check ledger health",
	Long: `Check the ledger for invariant violations: more than one open
entry, or entries pointing at deleted tasks.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowDoctor(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
