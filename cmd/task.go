package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/cli/handlers"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Manage the tasks time is tracked against.

Examples:
  tt task add write the quarterly report
  tt task ls
  tt task done 3
  tt task rm 3 --force`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddTask(cli.GetDeps(), strings.Join(args, " "))
	},
}

var taskListAll bool

var taskListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks with logged time",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListTasks(cli.GetDeps(), taskListAll)
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "task id"); ok {
			handlers.CompleteTask(cli.GetDeps(), id)
		}
	},
}

var taskArchiveCmd = &cobra.Command{
	Use:   "archive <task-id>",
	Short: "Hide a task from listings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "task id"); ok {
			handlers.ArchiveTask(cli.GetDeps(), id)
		}
	},
}

var taskUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <task-id>",
	Short: "Restore an archived task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "task id"); ok {
			handlers.UnarchiveTask(cli.GetDeps(), id)
		}
	},
}

var taskRemoveForce bool

var taskRemoveCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"remove"},
	Short:   "Delete a task",
	Long: `Delete a task.

A task that still has time entries is refused unless --force is given,
which deletes the entries too.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "task id"); ok {
			handlers.RemoveTask(cli.GetDeps(), id, taskRemoveForce)
		}
	},
}

func init() {
	taskListCmd.Flags().BoolVarP(&taskListAll, "all", "a", false, "include archived tasks")
	taskRemoveCmd.Flags().BoolVarP(&taskRemoveForce, "force", "f", false, "also delete the task's time entries")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskArchiveCmd)
	taskCmd.AddCommand(taskUnarchiveCmd)
	taskCmd.AddCommand(taskRemoveCmd)

	rootCmd.AddCommand(taskCmd)
}
