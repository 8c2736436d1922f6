package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/render"
	"github.com/ruth8415/TeamTasks/views"
)

func (a *app) tasksCmd() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Work the task board",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}
	tasksCmd.AddCommand(
		a.tasksBoardCmd(),
		a.tasksCreateCmd(),
		a.tasksUpdateCmd(),
		a.tasksMoveCmd(),
		a.tasksDeleteCmd(),
		a.tasksShowCmd(),
	)
	return tasksCmd
}

// findTask loads every task and returns the one with id.
func (a *app) findTask(ctx context.Context, id int64) (models.Task, error) {
	board := views.NewTasksBoard(a.svc, 0)
	if err := board.Load(ctx); err != nil {
		return models.Task{}, err
	}
	task, ok := a.svc.Tasks.Get(id)
	if !ok {
		return models.Task{}, fmt.Errorf("task #%d not found", id)
	}
	return task, nil
}

func (a *app) tasksBoardCmd() *cobra.Command {
	var projectID int64
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the To Do / In Progress / Done board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := views.NewTasksBoard(a.svc, projectID)
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			printOut(cmd, render.Board(board.Columns()))
			if back := board.BackTarget(); back != "" {
				printOut(cmd, "Back: "+back)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&projectID, "project", 0, "Only show this project's tasks")
	return cmd
}

func (a *app) tasksCreateCmd() *cobra.Command {
	var (
		title, description string
		status, priority   string
		projectID, teamID  int64
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Long: `Create a task in --project. With --team the project is picked from that
team's projects the way the all-tasks board asks for team first, then project.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boardProject := projectID
			if teamID != 0 {
				boardProject = 0
			}
			board := views.NewTasksBoard(a.svc, boardProject)
			form := board.NewTaskForm(models.TaskStatus(status))
			form.Title = title
			form.Description = description
			if priority != "" {
				form.Priority = models.TaskPriority(priority)
			}

			if form.NeedsProjectSelection() {
				form.SelectTeam(teamID)
				if projectID != 0 {
					if err := a.checkProjectInTeam(cmd.Context(), projectID, teamID); err != nil {
						return err
					}
					form.ProjectID = projectID
				}
			}

			task, err := board.CreateTask(cmd.Context(), form)
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Created task #%d %s", task.ID, task.Title))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "todo, in_progress or done (default todo)")
	cmd.Flags().StringVar(&priority, "priority", "", "low, normal or high (default normal)")
	cmd.Flags().Int64Var(&projectID, "project", 0, "Project ID")
	cmd.Flags().Int64Var(&teamID, "team", 0, "Team the project belongs to")
	return cmd
}

func (a *app) checkProjectInTeam(ctx context.Context, projectID, teamID int64) error {
	projects, err := a.svc.Projects.Load(ctx, 0)
	if err != nil {
		return err
	}
	for _, p := range views.FilteredProjects(projects, teamID) {
		if p.ID == projectID {
			return nil
		}
	}
	return fmt.Errorf("project #%d does not belong to team #%d", projectID, teamID)
}

func (a *app) tasksUpdateCmd() *cobra.Command {
	var (
		title, description string
		status, priority   string
	)
	cmd := &cobra.Command{
		Use:   "update <taskId>",
		Short: "Edit a task; only the flags you pass are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			task, err := a.findTask(cmd.Context(), taskID)
			if err != nil {
				return err
			}

			form := views.EditTaskForm(task)
			flags := cmd.Flags()
			if flags.Changed("title") {
				form.Title = title
			}
			if flags.Changed("description") {
				form.Description = description
			}
			if flags.Changed("status") {
				form.Status = models.TaskStatus(status)
			}
			if flags.Changed("priority") {
				form.Priority = models.TaskPriority(priority)
			}

			updated, err := form.Submit(cmd.Context(), a.svc.Tasks)
			if err != nil {
				return err
			}
			shown := *updated
			shown.ProjectName, shown.TeamName = task.ProjectName, task.TeamName
			printOut(cmd, render.Task(shown))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "todo, in_progress or done")
	cmd.Flags().StringVar(&priority, "priority", "", "low, normal or high")
	return cmd
}

func (a *app) tasksMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <taskId> <status>",
		Short: "Move a task to another column (todo, in_progress, done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			task, err := a.findTask(cmd.Context(), taskID)
			if err != nil {
				return err
			}
			to := models.TaskStatus(args[1])
			board := views.NewTasksBoard(a.svc, task.ProjectID)
			if err := board.Move(cmd.Context(), taskID, task.Status, to); err != nil {
				return err
			}
			if task.Status == to {
				printOut(cmd, fmt.Sprintf("Task #%d is already in %s", taskID, views.StatusLabel(to)))
				return nil
			}
			printOut(cmd, fmt.Sprintf("Moved task #%d from %s to %s", taskID, views.StatusLabel(task.Status), views.StatusLabel(to)))
			return nil
		},
	}
}

func (a *app) tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <taskId>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete task #%d?", taskID))
			if err != nil || !ok {
				return err
			}
			if err := views.NewTasksBoard(a.svc, 0).DeleteTask(cmd.Context(), taskID); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Deleted task #%d", taskID))
			return nil
		},
	}
}

func (a *app) tasksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <taskId>",
		Short: "Show a task with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			task, err := a.findTask(cmd.Context(), taskID)
			if err != nil {
				return err
			}
			comments := views.NewCommentsSection(a.svc, taskID)
			if err := comments.Load(cmd.Context()); err != nil {
				return err
			}
			printOut(cmd, render.Task(task))
			printOut(cmd)
			printOut(cmd, render.Comments(comments.Comments()))
			return nil
		},
	}
}
