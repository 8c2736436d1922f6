package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruth8415/TeamTasks/render"
	"github.com/ruth8415/TeamTasks/views"
)

func (a *app) commentsCmd() *cobra.Command {
	commentsCmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and write task comments",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <taskId>",
		Short: "List the comments of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			section := views.NewCommentsSection(a.svc, taskID)
			if err := section.Load(cmd.Context()); err != nil {
				return err
			}
			printOut(cmd, render.Comments(section.Comments()))
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <taskId> <text...>",
		Short: "Comment on a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			comment, err := views.NewCommentsSection(a.svc, taskID).Submit(cmd.Context(), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Added comment #%d to task #%d", comment.ID, taskID))
			return nil
		},
	}

	var taskID int64
	deleteCmd := &cobra.Command{
		Use:   "delete <commentId>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete comment #%d?", commentID))
			if err != nil || !ok {
				return err
			}
			section := views.NewCommentsSection(a.svc, taskID)
			if err := section.Delete(cmd.Context(), commentID); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Deleted comment #%d", commentID))
			if taskID == 0 {
				return nil
			}
			if err := section.Load(cmd.Context()); err != nil {
				return err
			}
			printOut(cmd, render.Comments(section.Comments()))
			return nil
		},
	}
	deleteCmd.Flags().Int64Var(&taskID, "task", 0, "Task the comment belongs to; its remaining comments are listed")

	commentsCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return commentsCmd
}
