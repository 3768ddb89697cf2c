package cmd

import (
	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/cli/handlers"
)

var (
	reportSince string
	reportUntil string
	reportGroup string
	reportTask  int64
	reportJSON  bool
	reportCSV   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time totals",
	Long: `Show rounded minute totals, grouped by task or by day.

Window anchors for --since/--until: today, yesterday, monday, week,
last-week, month, now, or an explicit timestamp.

Examples:
  tt report
  tt report --since monday
  tt report --since week --group day
  tt report --task 3 --since today
  tt report --json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("task") {
			handlers.ShowTaskReport(cli.GetDeps(), reportTask, reportSince, reportUntil)
			return
		}
		handlers.ShowReport(cli.GetDeps(), reportSince, reportUntil, reportGroup, reportJSON, reportCSV)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportSince, "since", "", "window start (timestamp or today/monday/week/...)")
	reportCmd.Flags().StringVar(&reportUntil, "until", "", "window end")
	reportCmd.Flags().StringVar(&reportGroup, "group", "task", "group totals by 'task' or 'day'")
	reportCmd.Flags().Int64Var(&reportTask, "task", 0, "show the per-entry breakdown for one task")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit JSON instead of a table")
	reportCmd.Flags().BoolVar(&reportCSV, "csv", false, "emit CSV instead of a table")

	rootCmd.AddCommand(reportCmd)
}
