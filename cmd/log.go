package cmd

import (
	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/cli/handlers"
	"github.com/okuren/tt/internal/service"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and edit time entries by hand",
	Long: `Record and edit time entries by hand.

Durations accept NdNhNm (e.g. 1h30m), :N, or a bare number of minutes.
Timestamps accept 'YYYY-MM-DD HH:MM', a bare date, or 'now'.

Examples:
  tt log add 1 --minutes 90
  tt log add 1 --ago 1h30m --note forgot the timer
  tt log add 1 --start '2025-03-10 09:00' --end '2025-03-10 10:30'
  tt log split 7 '2025-03-10 09:45'
  tt log trim 7 --end '2025-03-10 10:00'`,
}

var (
	logAddMinutes int
	logAddStart   string
	logAddEnd     string
	logAddAgo     string
	logAddNote    string
)

var logAddCmd = &cobra.Command{
	Use:   "add <task-id>",
	Short: "Log a closed entry",
	Long: `Log a closed entry for a task.

Give the interval one of four ways:
  --minutes N               ends now, lasted N minutes
  --ago <duration>          ends now, lasted that long
  --start T --end T         explicit interval
  --start T --minutes N     starts at T, lasts N minutes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := parseID(args[0], "task id")
		if !ok {
			return
		}
		opts := service.AddOptions{
			Start: logAddStart,
			End:   logAddEnd,
			Ago:   logAddAgo,
			Note:  logAddNote,
		}
		if cmd.Flags().Changed("minutes") {
			minutes := logAddMinutes
			opts.Minutes = &minutes
		}
		handlers.AddEntry(cli.GetDeps(), id, opts)
	},
}

var (
	logListSince string
	logListUntil string
)

var logListCmd = &cobra.Command{
	Use:     "ls <task-id>",
	Aliases: []string{"list"},
	Short:   "List a task's entries",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "task id"); ok {
			handlers.ListEntries(cli.GetDeps(), id, logListSince, logListUntil)
		}
	},
}

var logRemoveCmd = &cobra.Command{
	Use:     "rm <entry-id>",
	Aliases: []string{"remove"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "entry id"); ok {
			handlers.RemoveEntry(cli.GetDeps(), id)
		}
	},
}

var (
	logEditMinutes int
	logEditNote    string
)

var logEditCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Change an entry's duration or note",
	Long: `Change an entry's duration or note.

--minutes recomputes the end as start + minutes and only works on
closed entries. --note rewrites the note; an empty note clears it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := parseID(args[0], "entry id")
		if !ok {
			return
		}
		var minutes *int
		if cmd.Flags().Changed("minutes") {
			m := logEditMinutes
			minutes = &m
		}
		var note *string
		if cmd.Flags().Changed("note") {
			n := logEditNote
			note = &n
		}
		handlers.EditEntry(cli.GetDeps(), id, minutes, note)
	},
}

var logMoveCmd = &cobra.Command{
	Use:   "move <entry-id> <task-id>",
	Short: "Reassign an entry to another task",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := parseID(args[0], "entry id")
		if !ok {
			return
		}
		taskID, ok := parseID(args[1], "task id")
		if !ok {
			return
		}
		handlers.MoveEntry(cli.GetDeps(), id, taskID)
	},
}

var logSplitCmd = &cobra.Command{
	Use:   "split <entry-id> <at>",
	Short: "Split a closed entry in two",
	Long: `Split a closed entry in two at an instant strictly inside it.

The original keeps the first piece; a new entry with the same task and
note takes the rest.

Example:
  tt log split 7 '2025-03-10 09:45'`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "entry id"); ok {
			handlers.SplitEntry(cli.GetDeps(), id, args[1])
		}
	},
}

var (
	logTrimStart string
	logTrimEnd   string
)

var logTrimCmd = &cobra.Command{
	Use:   "trim <entry-id>",
	Short: "Move a closed entry's bounds",
	Long: `Move one or both bounds of a closed entry.

The result must still be a positive interval, otherwise the entry is
left unchanged.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if id, ok := parseID(args[0], "entry id"); ok {
			handlers.TrimEntry(cli.GetDeps(), id, logTrimStart, logTrimEnd)
		}
	},
}

func init() {
	logAddCmd.Flags().IntVar(&logAddMinutes, "minutes", 0, "duration in minutes")
	logAddCmd.Flags().StringVar(&logAddStart, "start", "", "start timestamp")
	logAddCmd.Flags().StringVar(&logAddEnd, "end", "", "end timestamp")
	logAddCmd.Flags().StringVar(&logAddAgo, "ago", "", "duration before now (e.g. 1h30m)")
	logAddCmd.Flags().StringVar(&logAddNote, "note", "", "note for the entry")

	logListCmd.Flags().StringVar(&logListSince, "since", "", "window start (timestamp or today/monday/week/...)")
	logListCmd.Flags().StringVar(&logListUntil, "until", "", "window end")

	logEditCmd.Flags().IntVar(&logEditMinutes, "minutes", 0, "new duration in minutes")
	logEditCmd.Flags().StringVar(&logEditNote, "note", "", "new note")

	logTrimCmd.Flags().StringVar(&logTrimStart, "start", "", "new start timestamp")
	logTrimCmd.Flags().StringVar(&logTrimEnd, "end", "", "new end timestamp")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logRemoveCmd)
	logCmd.AddCommand(logEditCmd)
	logCmd.AddCommand(logMoveCmd)
	logCmd.AddCommand(logSplitCmd)
	logCmd.AddCommand(logTrimCmd)

	rootCmd.AddCommand(logCmd)
}
