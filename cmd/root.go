package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mergedeck/internal/git"
	"mergedeck/internal/logging"
	"mergedeck/internal/ui"
)

var (
	debug     bool
	debugFile string
)

var rootCmd = &cobra.Command{
	Use:     "mergedeck",
	Version: "0.1.0",
	Short:   "A terminal UI for previewing and merging git branches",
	Long:    `mergedeck - pick a branch, preview the merge outcome (clean, conflicted, unrelated histories), and merge or squash-merge it into your current branch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(debug, debugFile); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		if !git.IsRepository() {
			return fmt.Errorf("not a git repository")
		}

		p := tea.NewProgram(ui.NewModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run app: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write diagnostic logs to a file")
	rootCmd.Flags().StringVar(&debugFile, "debug-file", "", "write diagnostic logs to this file instead of the default location")
	rootCmd.SilenceUsage = true
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
