package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/cli/handlers"
	"github.com/okuren/tt/internal/pomodoro"
)

var pomCmd = &cobra.Command{
	Use:   "pom",
	Short: "Run pomodoro sessions",
}

var pomNote string

var pomStartCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Run a pomodoro session against a task",
	Long: `Run a pomodoro session against a task.

Each work block is tracked as a real time entry; breaks are not
tracked. Block lengths and cycle count come from the [pomodoro]
section of the config file. Quit with q; the running entry is closed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := parseID(args[0], "task id")
		if !ok {
			return
		}
		deps := cli.GetDeps()
		if err := pomodoro.Run(deps.Services, deps.Config.Pomodoro, id, pomNote); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		handlers.ShowStatus(deps)
	},
}

func init() {
	pomStartCmd.Flags().StringVar(&pomNote, "note", "", "note for the tracked work blocks")

	pomCmd.AddCommand(pomStartCmd)
	rootCmd.AddCommand(pomCmd)
}
