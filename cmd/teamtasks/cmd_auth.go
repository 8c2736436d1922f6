package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruth8415/TeamTasks/services"
	"github.com/ruth8415/TeamTasks/views"
)

func (a *app) loginCmd() *cobra.Command {
	var form views.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if form.Email, err = a.valueOrPrompt(cmd, form.Email, "Email"); err != nil {
				return err
			}
			if form.Password, err = a.passwordOrPrompt(cmd, form.Password, "Password"); err != nil {
				return err
			}
			user, err := form.Submit(cmd.Context(), a.svc.Auth)
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Logged in as %s <%s>", user.Name, user.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "Account password (prompted when empty)")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var form views.RegisterForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if form.Name, err = a.valueOrPrompt(cmd, form.Name, "Name"); err != nil {
				return err
			}
			if form.Email, err = a.valueOrPrompt(cmd, form.Email, "Email"); err != nil {
				return err
			}
			if form.Password, err = a.passwordOrPrompt(cmd, form.Password, "Password"); err != nil {
				return err
			}
			user, err := form.Submit(cmd.Context(), a.svc.Auth)
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Welcome, %s! You are now logged in.", user.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "Account password (prompted when empty)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Auth.Logout(); err != nil {
				return err
			}
			printOut(cmd, "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.svc.Auth.Me(cmd.Context())
			if errors.Is(err, services.ErrNotLoggedIn) {
				printOut(cmd, "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("%s <%s> (#%d)", user.Name, user.Email, user.ID))
			return nil
		},
	}
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := a.svc.Health.Check(cmd.Context())
			if err != nil {
				return fmt.Errorf("API at %s is not healthy: %w", a.cfg.BaseURL(), err)
			}
			printOut(cmd, fmt.Sprintf("API at %s: %s", a.cfg.BaseURL(), health.Status))
			return nil
		},
	}
}
