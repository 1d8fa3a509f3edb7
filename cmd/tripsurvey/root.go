package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/tripsurvey/internal/config"
	"github.com/kingrea/tripsurvey/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "tripsurvey",
	Short: "Record household trips for transportation planning research",
	Long: `tripsurvey walks a surveyor through one trip at a time: where and how the
trip happened, then who travelled. Each accepted trip gets a reference ID.`,
	SilenceUsage: true,
	RunE:         runSurvey,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory holding the .tripsurvey folder")
	rootCmd.Flags().String("prefix", "", "Trip ID prefix for this session (overrides config)")
}

// workDir resolves --dir to an absolute path.
func workDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

// loadConfig reads .tripsurvey/config.yaml under --dir without creating
// anything; a missing file yields the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := workDir(cmd)
	if err != nil {
		return nil, err
	}
	return config.NewConfig(dir)
}

// initConfig makes sure .tripsurvey exists under --dir and loads it.
func initConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := workDir(cmd)
	if err != nil {
		return nil, err
	}
	if err := config.InitDir(dir); err != nil {
		return nil, err
	}
	return config.NewConfig(dir)
}

func runSurvey(cmd *cobra.Command, args []string) error {
	cfg, err := initConfig(cmd)
	if err != nil {
		return err
	}
	if prefix, _ := cmd.Flags().GetString("prefix"); prefix != "" {
		if err := cfg.OverrideTripIDPrefix(prefix); err != nil {
			return err
		}
	}
	app, err := tui.NewApp(cfg)
	if err != nil {
		return err
	}
	// Alternate screen buffer, like vim does
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
