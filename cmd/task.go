package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/rptodo/internal/editor"
	"github.com/rogersnm/rptodo/internal/id"
	"github.com/rogersnm/rptodo/internal/markdown"
	"github.com/rogersnm/rptodo/internal/model"
	"github.com/rogersnm/rptodo/internal/todo"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <description>...",
	Short: "Add a new to-do with a description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, _ := cmd.Flags().GetInt("priority")
		if err := model.ValidatePriority(priority); err != nil {
			return err
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		t, err := svc.CreateTask(args, priority)
		if err != nil {
			if t.Description != "" {
				logger.Warn("to-do not added", "description", t.Description)
			}
			return fail("Adding to-do", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.Success(
			fmt.Sprintf("to-do: %q was added with priority: %d", t.Description, t.Priority)))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"getall"},
	Short:   "List all to-dos",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, _ := cmd.Flags().GetBool("pending")

		svc, err := openService()
		if err != nil {
			return err
		}
		tasks, err := svc.ListAll()
		if err != nil {
			return fail("Listing to-dos", err)
		}
		if pending {
			open := tasks[:0]
			for _, t := range tasks {
				if !t.Done {
					open = append(open, t)
				}
			}
			tasks = open
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderTaskTable(tasks))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show to-do details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pretty, _ := cmd.Flags().GetBool("pretty")

		taskID, err := id.Parse(args[0])
		if err != nil {
			return err
		}
		svc, err := openService()
		if err != nil {
			return err
		}
		t, err := svc.Get(taskID)
		if err != nil {
			return fail("Showing to-do", err)
		}

		out := cmd.OutOrStdout()
		if !pretty {
			data, err := markdown.MarshalTask(t)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
			return nil
		}

		fields := []string{
			markdown.RenderField("ID", t.ID),
			markdown.RenderField("Priority", markdown.RenderPriority(t.Priority)),
			markdown.RenderField("Status", markdown.RenderDone(t.Done)),
		}
		fmt.Fprint(out, markdown.RenderEntityHeader("To-do", fields))
		rendered, err := markdown.RenderMarkdown(t.Description)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a to-do as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := id.Parse(args[0])
		if err != nil {
			return err
		}
		svc, err := openService()
		if err != nil {
			return err
		}
		t, err := svc.Complete(taskID)
		if err != nil {
			return fail("Completing to-do", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.Success(fmt.Sprintf("to-do: %q marked as done", t.Description)))
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a to-do in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := id.Parse(args[0])
		if err != nil {
			return err
		}
		svc, err := openService()
		if err != nil {
			return err
		}
		t, err := svc.Get(taskID)
		if err != nil {
			return fail("Editing to-do", err)
		}

		data, err := markdown.MarshalTask(t)
		if err != nil {
			return err
		}
		edited, err := editor.Edit(data, "rptodo-*.md")
		if err != nil {
			return err
		}
		if bytes.Equal(edited, data) {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			return nil
		}

		parsed, err := markdown.ParseTask(bytes.NewReader(edited))
		if err != nil {
			return err
		}
		if parsed.ID != t.ID {
			return fmt.Errorf("the uuid of a to-do cannot be changed")
		}
		updated, err := svc.Update(t.ID, todo.TaskUpdate{
			Description: &parsed.Description,
			Priority:    &parsed.Priority,
			Done:        &parsed.Done,
		})
		if err != nil {
			return fail("Editing to-do", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.Success(fmt.Sprintf("Updated to-do %s", updated.ID)))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"deletebyuuid"},
	Short:   "Delete a to-do by ID",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := id.Parse(args[0])
		if err != nil {
			return err
		}
		svc, err := openService()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		t, err := svc.Get(taskID)
		switch {
		case errors.Is(err, todo.ErrNotFound):
			fmt.Fprintf(out, "No to-do with id %s, nothing deleted\n", taskID)
			return nil
		case err != nil:
			return fail("Deleting to-do", err)
		}

		if err := svc.DeleteByID(taskID); err != nil {
			return fail("Deleting to-do", err)
		}
		fmt.Fprintln(out, markdown.Success(fmt.Sprintf("to-do: %q was deleted", t.Description)))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"delete-all"},
	Short:   "Delete all to-dos",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if err := confirmDelete(cmd, "Delete all to-dos?"); err != nil {
			return err
		}
		if err := svc.DeleteAll(); err != nil {
			return fail("Deleting all to-dos", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.Success("Deleted all to-dos"))
		return nil
	},
}

// confirmDelete prompts unless --force was given.
func confirmDelete(cmd *cobra.Command, title string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	ok, err := confirmPrompt(title)
	if err != nil {
		return fmt.Errorf("confirming deletion: %w", err)
	}
	if !ok {
		return fmt.Errorf("deletion cancelled")
	}
	return nil
}

var confirmPrompt = defaultConfirmPrompt

func defaultConfirmPrompt(title string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().Title(title).Value(&confirm).Run()
	return confirm, err
}

func init() {
	addCmd.Flags().IntP("priority", "p", model.DefaultPriority, "priority (1=high, 2=medium, 3=low)")

	listCmd.Flags().Bool("pending", false, "only show to-dos that are not done")

	showCmd.Flags().Bool("pretty", false, "render with ANSI styling")

	clearCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
}
