package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the survey configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check .tripsurvey/config.yaml for mistakes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", cfg.ConfigPath())
		return nil
	},
}

var configSetPrefixCmd = &cobra.Command{
	Use:   "set-prefix PREFIX",
	Short: "Change the trip ID prefix and save it to config.yaml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.SetTripIDPrefix(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Trip IDs now start with %s\n", cfg.TripIDPrefix())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configValidateCmd, configSetPrefixCmd)
	rootCmd.AddCommand(configCmd)
}
