package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/services"
)

// app carries the global flags and what PersistentPreRunE builds from them.
type app struct {
	envFile   string
	apiURL    string
	assumeYes bool

	cfg config.Config
	svc *services.Services
	in  *bufio.Reader
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "teamtasks",
		Short: "TeamTasks - teams, projects and task boards from the terminal",
		Long: `teamtasks talks to the TeamTasks REST API.

Log in once, then list teams and projects, work the three-column task board
and discuss tasks in comments. "teamtasks serve" starts a local composer that
serves the same enriched views as JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional .env file with TEAMTASKS_* settings")
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (or set TEAMTASKS_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&a.assumeYes, "yes", "y", false, "Do not ask before deleting")

	rootCmd.AddCommand(a.loginCmd())
	rootCmd.AddCommand(a.registerCmd())
	rootCmd.AddCommand(a.logoutCmd())
	rootCmd.AddCommand(a.whoamiCmd())
	rootCmd.AddCommand(a.healthCmd())
	rootCmd.AddCommand(a.teamsCmd())
	rootCmd.AddCommand(a.projectsCmd())
	rootCmd.AddCommand(a.tasksCmd())
	rootCmd.AddCommand(a.commentsCmd())
	rootCmd.AddCommand(a.serveCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	if err := logging.InitLogger(logging.Options{
		SystemName: "teamtasks-cli",
		Filename:   cfg.LogFile,
		Level:      cfg.LogLevel,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	session := services.NewSession(cfg.SessionFile)
	if err := session.Load(); err != nil {
		return err
	}
	a.svc = services.NewFromConfig(cfg, session)
	return nil
}

// requireLogin fails fast instead of letting the API answer 401.
func (a *app) requireLogin() error {
	if !a.svc.Auth.IsAuthenticated(time.Now()) {
		return fmt.Errorf("%w, run \"teamtasks login\" first", services.ErrNotLoggedIn)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
