package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/cli/handlers"
)

// parseID parses a positive integer id argument, exiting on bad input.
func parseID(arg, what string) (int64, bool) {
	deps := cli.GetDeps()
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid %s '%s'. Expected a positive number\n", what, arg)
		deps.Exit(1)
		return 0, false
	}
	return id, true
}

var startNote string

var startCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Start tracking time on a task",
	Long: `Start tracking time on a task.

If another entry is already running it is closed first; only one entry
is ever open. The task is marked as doing.

Examples:
  tt start 1
  tt start 1 --note reviewing the API draft`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := parseID(args[0], "task id")
		if !ok {
			return
		}
		handlers.StartTask(cli.GetDeps(), id, startNote)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop [task-id]",
	Short: "Stop the running entry",
	Long: `Stop the running entry.

Without an argument, stops whatever is running. With a task id, stops
only if that task is the one being tracked.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var taskID int64
		if len(args) == 1 {
			id, ok := parseID(args[0], "task id")
			if !ok {
				return
			}
			taskID = id
		}
		handlers.StopTask(cli.GetDeps(), taskID)
	},
}

var switchNote string

var switchCmd = &cobra.Command{
	Use:   "switch <task-id>",
	Short: "Stop the running entry and start tracking another task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := parseID(args[0], "task id")
		if !ok {
			return
		}
		handlers.SwitchTask(cli.GetDeps(), id, switchNote)
	},
}

var resumeNote string

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Reopen tracking on the most recently closed entry's task",
	Long: `Reopen tracking on the task of the most recently closed entry.

The previous entry's note is reused unless --note is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResumeLast(cli.GetDeps(), resumeNote)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is being tracked right now",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowStatus(cli.GetDeps())
	},
}

func init() {
	startCmd.Flags().StringVar(&startNote, "note", "", "note for the new entry")
	switchCmd.Flags().StringVar(&switchNote, "note", "", "note for the new entry")
	resumeCmd.Flags().StringVar(&resumeNote, "note", "", "override the reused note")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(statusCmd)
}
