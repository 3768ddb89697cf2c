package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
)

var dbFlag string

var rootCmd = &cobra.Command{
	Use:   "tt",
	Short: "A personal time tracking ledger",
	Long: `tt tracks the time you spend on tasks.

Start tracking with 'tt start <task-id>'; at most one entry is ever
running, so starting something new closes whatever was running first.
Closed entries can be edited, split, trimmed and moved between tasks,
and reports aggregate rounded minutes per task or per day.

Examples:
  tt task add write the quarterly report
  tt start 1 --note first draft
  tt switch 2
  tt stop
  tt report --since monday
  tt log add 1 --ago 1h30m --note forgot to start the timer`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		deps := cli.GetDeps()
		if err := deps.Init(dbFlag); err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the time ledger")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the database path, or point --db at a writable location")
			deps.Exit(1)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "path to the sqlite database (default: user config dir)")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tt version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
