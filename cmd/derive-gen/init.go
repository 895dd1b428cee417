package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"derive-generator/internal/config"
	"derive-generator/internal/logger"
)

func newInitCmd(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(root.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", root.configPath)
			}

			data, err := config.Marshal(config.Default())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			if err := os.WriteFile(root.configPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write config file %s: %w", root.configPath, err)
			}

			logger.Info("wrote", "file", root.configPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
