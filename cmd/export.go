package cmd

import (
	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/cli/handlers"
)

var (
	exportSince string
	exportUntil string
)

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv",
	Short: "Export entries as CSV",
	Long: `Export every entry in the window as CSV rows with their task,
interval, rounded minutes and note.

Examples:
  tt export-csv > entries.csv
  tt export-csv --since month`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ExportCSV(cli.GetDeps(), exportSince, exportUntil)
	},
}

var exportMDCmd = &cobra.Command{
	Use:   "export-md",
	Short: "Export a markdown time report",
	Long: `Export a markdown report with one section per task and its
per-entry breakdown.

Examples:
  tt export-md > report.md
  tt export-md --since last-week --until monday`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ExportMarkdown(cli.GetDeps(), exportSince, exportUntil)
	},
}

func init() {
	for _, c := range []*cobra.Command{exportCSVCmd, exportMDCmd} {
		c.Flags().StringVar(&exportSince, "since", "", "window start (timestamp or today/monday/week/...)")
		c.Flags().StringVar(&exportUntil, "until", "", "window end")
		rootCmd.AddCommand(c)
	}
}
