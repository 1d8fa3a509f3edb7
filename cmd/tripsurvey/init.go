package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .tripsurvey with a default config and log folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", cfg.SurveyDir)
		fmt.Fprintf(cmd.OutOrStdout(), "  config: %s\n", cfg.ConfigPath())
		fmt.Fprintf(cmd.OutOrStdout(), "  log:    %s\n", cfg.JourneyLogPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
