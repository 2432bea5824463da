// Package cli wires the interactive version-tree shell into a cobra
// command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"treevc/internal/colors"
	"treevc/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "treevc",
	Short: "treevc is an in-memory per-file version tree shell",
	Long: `treevc tracks files as in-memory version trees: every file owns a
tree of immutable snapshots plus one mutable active version, with
rollback, checkout by version id, and top-k queries over all tracked
files by recency and by version count.

Run without arguments to enter the command shell; type HELP there for
the command list. All state is discarded on exit.`,
	SilenceUsage: true,
	RunE:         runShell,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("treevc takes no arguments, got %d", len(args))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Color.UI {
		colors.SetColorEnabled(false)
	}

	shell := NewShell(cfg, os.Stdin, os.Stdout, os.Stderr)
	shell.SetInteractive(isTerminal(os.Stdin))
	return shell.Run()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
