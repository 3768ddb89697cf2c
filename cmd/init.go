package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Long: `Write a sample config file to the user config directory.

Refuses to overwrite an existing file.`,
	Args: cobra.NoArgs,
	// Writing a config file must work even when the store cannot be
	// opened, so skip the ledger setup the root command performs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()

		path, err := config.GetConfigPath()
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to determine config location: %v\n", err)
			deps.Exit(1)
			return
		}

		if _, err := os.Stat(path); err == nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Config file already exists: %s\n", path)
			deps.Exit(1)
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create config directory: %v\n", err)
			deps.Exit(1)
			return
		}
		if err := os.WriteFile(path, []byte(config.GenerateSampleConfig()), 0o644); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to write config file: %v\n", err)
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
