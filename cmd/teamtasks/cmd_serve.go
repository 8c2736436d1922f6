package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruth8415/TeamTasks/handlers"
	"github.com/ruth8415/TeamTasks/logging"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve enriched teams, projects and boards as JSON",
		Long: `Starts the composer. Each request's Authorization header is forwarded to
the API, so callers use their own TeamTasks token.

Routes:
  GET /api/health
  GET /api/teams
  GET /api/projects[?teamId=]
  GET /api/board[?projectId=]
  GET /api/tasks/{taskId}/comments`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ComposerAddr
			}
			router := handlers.NewRouter(handlers.NewComposerHandler(handlers.NewServicesFactory(a.cfg)))
			srv := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: a.cfg.HTTPTimeout + 10*time.Second,
			}
			return runServer(cmd, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (or set TEAMTASKS_COMPOSER_ADDR)")
	return cmd
}

// runServer serves until the command context is cancelled, then shuts down gracefully.
func runServer(cmd *cobra.Command, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Composer running on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()
	printOut(cmd, fmt.Sprintf("Composer listening on %s", srv.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("composer stopped: %w", err)
	case <-cmd.Context().Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logging.Logger.Info("Event ID: SERVER_SHUTDOWN, Description: Shutting down composer")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("composer shutdown: %w", err)
	}
	return nil
}
