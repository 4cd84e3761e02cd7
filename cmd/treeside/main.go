package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"treeside/internal/config"
	"treeside/internal/log"
	"treeside/internal/state"
	"treeside/internal/tui"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	var configPath string
	var debug bool
	var noState bool

	rootCmd := &cobra.Command{
		Use:     "treeside [directory]",
		Short:   "A file tree sidebar for the terminal",
		Long: `Treeside shows a keyboard-driven file tree for a working directory,
built to sit in a narrow tmux pane next to your editor. It remembers
which directories you had open per project.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir := ""
			if len(args) > 0 {
				rootDir = args[0]
			}
			if rootDir == "" {
				var err error
				rootDir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("error getting current directory: %w", err)
				}
			}
			rootDir, err := filepath.Abs(rootDir)
			if err != nil {
				return fmt.Errorf("error resolving directory: %w", err)
			}

			var cfg *config.Config
			if configPath != "" {
				cfg, err = config.LoadConfigFile(configPath)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log.Setup()
			defer log.Close()
			log.SetDebug(debug)

			var store *state.Store
			if !noState {
				store, err = state.NewStore()
				if err != nil {
					log.LogWithError(err).Warn("state persistence disabled")
				}
			}

			model, err := tui.New(rootDir, cfg, store)
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running interface: %w", err)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noState, "no-state", false, "do not load or save browsing state")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
