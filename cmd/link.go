package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rogersnm/rptodo/internal/markdown"
	"github.com/rogersnm/rptodo/internal/repofile"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link [db-path]",
	Short: "Use a database for commands run in the current directory tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		var path string
		if len(args) > 0 {
			path, err = filepath.Abs(args[0])
		} else {
			path, err = resolveDatabase()
		}
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("database not found at %s. Please, run \"rptodo init --db-path %s\"", path, path)
		}

		if err := repofile.Write(cwd, path); err != nil {
			return fmt.Errorf("writing %s: %w", repofile.FileName, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.Success(fmt.Sprintf("Linked %s to %s", cwd, path)))
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the database link from the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := repofile.Remove(cwd); err != nil {
			return fmt.Errorf("removing %s: %w", repofile.FileName, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Unlinked")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}
