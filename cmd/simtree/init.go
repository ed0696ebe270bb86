package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simtree-go/simtree/internal/config"
)

// NewInitCmd builds the `init` subcommand, scaffolding a default
// simtree.toml configuration file.
func NewInitCmd() *cobra.Command {
	var force bool
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default simtree.toml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}

			if _, err := os.Stat(abs); err == nil && !force {
				return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", abs)
			}

			data, err := config.WriteDefaultTOML()
			if err != nil {
				return fmt.Errorf("failed to render default configuration: %w", err)
			}
			if err := os.WriteFile(abs, data, 0o644); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", abs)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&path, "config", "c", config.DefaultConfigFileName, "configuration file path")

	return cmd
}
