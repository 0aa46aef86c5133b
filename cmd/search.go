package cmd

import (
	"fmt"

	"github.com/rogersnm/rptodo/internal/markdown"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find to-dos whose description contains a phrase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		results, err := svc.Search(args[0])
		if err != nil {
			return fail("Searching to-dos", err)
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderTaskTable(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
