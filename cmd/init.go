package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/riceinspect/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a riceinspect config file in the current directory",
		Long:  `Creates a .riceinspect/config.yaml file in the current directory with default settings.`,
		Args:  cobra.NoArgs,
		// An existing config may be the reason init is being run; don't load it.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	configPath := config.DefaultConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := config.WriteDefaultConfig(configPath); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
