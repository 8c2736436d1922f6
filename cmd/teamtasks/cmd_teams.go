package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruth8415/TeamTasks/render"
	"github.com/ruth8415/TeamTasks/views"
)

func (a *app) teamsCmd() *cobra.Command {
	teamsCmd := &cobra.Command{
		Use:   "teams",
		Short: "List and manage teams and their members",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := views.NewTeamsList(a.svc)
			if err := list.Load(cmd.Context()); err != nil {
				return err
			}
			printOut(cmd, render.Teams(list.Teams()))
			return nil
		},
	}

	var form views.TeamForm
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := views.NewTeamsList(a.svc).CreateTeam(cmd.Context(), form)
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Created team #%d %s", team.ID, team.Name))
			return nil
		},
	}
	createCmd.Flags().StringVar(&form.Name, "name", "", "Team name")
	createCmd.Flags().StringVar(&form.Description, "description", "", "Team description")

	membersCmd := &cobra.Command{
		Use:   "members <teamId>",
		Short: "List the members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID(args[0], "team")
			if err != nil {
				return err
			}
			members, err := views.NewTeamsList(a.svc).Members(cmd.Context(), teamID)
			if err != nil {
				return err
			}
			printOut(cmd, render.Members(members))
			return nil
		},
	}

	addMemberCmd := &cobra.Command{
		Use:   "add-member <teamId> <email>",
		Short: "Add a registered user to a team by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID(args[0], "team")
			if err != nil {
				return err
			}
			if err := views.NewTeamsList(a.svc).AddMember(cmd.Context(), teamID, args[1]); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Added %s to team #%d", args[1], teamID))
			return nil
		},
	}

	removeMemberCmd := &cobra.Command{
		Use:   "remove-member <teamId> <userId>",
		Short: "Remove a member from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID(args[0], "team")
			if err != nil {
				return err
			}
			userID, err := parseID(args[1], "user")
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Remove user #%d from team #%d?", userID, teamID))
			if err != nil || !ok {
				return err
			}
			if err := views.NewTeamsList(a.svc).RemoveMember(cmd.Context(), teamID, userID); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Removed user #%d from team #%d", userID, teamID))
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <teamId>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID(args[0], "team")
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete team #%d?", teamID))
			if err != nil || !ok {
				return err
			}
			if err := views.NewTeamsList(a.svc).DeleteTeam(cmd.Context(), teamID); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Deleted team #%d", teamID))
			return nil
		},
	}

	teamsCmd.AddCommand(listCmd, createCmd, membersCmd, addMemberCmd, removeMemberCmd, deleteCmd)
	return teamsCmd
}
