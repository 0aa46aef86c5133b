package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/rptodo/internal/config"
	"github.com/rogersnm/rptodo/internal/markdown"
	"github.com/rogersnm/rptodo/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the to-do database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("db-path")
		reset, _ := cmd.Flags().GetBool("reset")

		if !cmd.Flags().Changed("db-path") {
			if err := huh.NewInput().
				Title("to-do database location?").
				Value(&path).
				Run(); err != nil {
				return fmt.Errorf("cancelled")
			}
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}

		cfg.Database = abs
		if err := config.Save(configDir, cfg); err != nil {
			return fail("Creating config file", err)
		}

		if _, err := os.Stat(abs); err == nil && !reset {
			fmt.Fprintln(cmd.OutOrStdout(), markdown.Success("Using existing to-do database "+abs))
			return nil
		}
		if err := store.New(abs).Init(); err != nil {
			return fail("Creating database", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.Success("The to-do database is "+abs))
		return nil
	},
}

func init() {
	initCmd.Flags().StringP("db-path", "d", config.DefaultDatabasePath(), "to-do database location")
	initCmd.Flags().Bool("reset", false, "empty the database if it already exists")
	rootCmd.AddCommand(initCmd)
}
