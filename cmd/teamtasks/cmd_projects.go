package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruth8415/TeamTasks/render"
	"github.com/ruth8415/TeamTasks/views"
)

func (a *app) projectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List and manage projects",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}

	var teamID int64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally only one team's",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := views.NewProjectsList(a.svc, teamID)
			if err := list.Load(cmd.Context()); err != nil {
				return err
			}
			printOut(cmd, render.Projects(list.Projects(), teamID == 0))
			if back := list.BackTarget(); teamID != 0 && back != "" {
				printOut(cmd, "Back: "+back)
			}
			return nil
		},
	}
	listCmd.Flags().Int64Var(&teamID, "team", 0, "Only show this team's projects")

	var form views.ProjectForm
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project in a team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := views.NewProjectsList(a.svc, form.TeamID).CreateProject(cmd.Context(), form)
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Created project #%d %s", project.ID, project.Name))
			return nil
		},
	}
	createCmd.Flags().StringVar(&form.Name, "name", "", "Project name")
	createCmd.Flags().StringVar(&form.Description, "description", "", "Project description")
	createCmd.Flags().Int64Var(&form.TeamID, "team", 0, "Owning team ID")

	deleteCmd := &cobra.Command{
		Use:   "delete <projectId>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], "project")
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete project #%d?", projectID))
			if err != nil || !ok {
				return err
			}
			if err := views.NewProjectsList(a.svc, 0).DeleteProject(cmd.Context(), projectID); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Deleted project #%d", projectID))
			return nil
		},
	}

	projectsCmd.AddCommand(listCmd, createCmd, deleteCmd)
	return projectsCmd
}
