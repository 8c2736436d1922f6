package views

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/services"
)

type Column struct {
	Status models.TaskStatus
	Label  string
	Tasks  []models.Task
}

// TasksBoard backs the kanban board. A zero projectID shows every task with
// project and team names attached; otherwise only that project's tasks.
type TasksBoard struct {
	svc       *services.Services
	projectID int64

	mu     sync.RWMutex
	teamID int64
}

func NewTasksBoard(svc *services.Services, projectID int64) *TasksBoard {
	return &TasksBoard{svc: svc, projectID: projectID}
}

func (b *TasksBoard) ProjectID() int64 {
	return b.projectID
}

// TeamID is the team owning the board's project, 0 until known.
func (b *TasksBoard) TeamID() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.teamID
}

func (b *TasksBoard) Loading() bool {
	return b.svc.Tasks.Tasks.Loading()
}

func (b *TasksBoard) Load(ctx context.Context) error {
	if b.projectID == 0 {
		return b.loadAll(ctx)
	}
	return b.loadProject(ctx)
}

// loadAll fetches tasks, projects and teams in parallel and commits the enriched
// tasks once. It stays the reload after task mutations until a scoped Load.
func (b *TasksBoard) loadAll(ctx context.Context) error {
	var (
		tasks    []models.Task
		projects []models.Project
		teams    []models.Team
	)
	coll := b.svc.Tasks.Tasks
	ticket := coll.Begin()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = b.svc.Tasks.Fetch(gctx, 0)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = b.svc.Projects.Fetch(gctx, 0)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = b.svc.Teams.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		coll.Fail(ticket)
		return err
	}

	coll.Commit(ticket, services.EnrichTasks(tasks, projects, teams))
	b.svc.Tasks.ReloadWith(b.Load)
	return nil
}

func (b *TasksBoard) loadProject(ctx context.Context) error {
	var projects []models.Project
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := b.svc.Tasks.Load(gctx, b.projectID)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = b.svc.Projects.Load(gctx, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range projects {
		if p.ID == b.projectID {
			b.mu.Lock()
			b.teamID = p.TeamID
			b.mu.Unlock()
			break
		}
	}
	return nil
}

// Tasks returns the loaded tasks visible on this board.
func (b *TasksBoard) Tasks() []models.Task {
	all := b.svc.Tasks.Tasks.Items()
	if b.projectID == 0 {
		return all
	}
	filtered := make([]models.Task, 0, len(all))
	for _, t := range all {
		if t.ProjectID == b.projectID {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Columns groups the visible tasks by status in board order. Tasks with an
// unknown status are not shown.
func (b *TasksBoard) Columns() []Column {
	columns := make([]Column, len(models.TaskStatuses))
	index := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for i, s := range models.TaskStatuses {
		columns[i] = Column{Status: s, Label: StatusLabel(s), Tasks: []models.Task{}}
		index[s] = i
	}
	for _, t := range b.Tasks() {
		if i, ok := index[t.Status]; ok {
			columns[i].Tasks = append(columns[i].Tasks, t)
		}
	}
	return columns
}

// Move changes a task's status as a drop between columns. Dropping into the
// same column does nothing. When the update fails the board is reloaded so it
// shows the server's state again, and the update error is returned.
func (b *TasksBoard) Move(ctx context.Context, taskID int64, from, to models.TaskStatus) error {
	if from == to {
		return nil
	}
	if !to.Valid() {
		return &ValidationError{Fields: map[string]string{"status": fmt.Sprintf("unknown status %q", to)}}
	}

	_, err := b.svc.Tasks.Update(ctx, taskID, models.UpdateTaskRequest{Status: &to})
	if err != nil {
		if reloadErr := b.Load(ctx); reloadErr != nil {
			logging.Logger.Warnf("Event ID: BOARD_RELOAD_FAILED, Description: Reload after failed move of task %d failed: %v", taskID, reloadErr)
		}
		return err
	}
	return nil
}

// CreateTask submits form; the tasks service reloads the board afterwards.
func (b *TasksBoard) CreateTask(ctx context.Context, form *TaskForm) (*models.Task, error) {
	return form.Submit(ctx, b.svc.Tasks)
}

func (b *TasksBoard) DeleteTask(ctx context.Context, taskID int64) error {
	return b.svc.Tasks.Delete(ctx, taskID)
}

// NewTaskForm opens a create form for this board, pre-set to status.
func (b *TasksBoard) NewTaskForm(status models.TaskStatus) *TaskForm {
	return NewTaskForm(b.projectID, status)
}

// BackTarget is where leaving the board navigates to: the owning team's
// projects when known, all projects for a project board otherwise, and
// nowhere for the all-tasks board.
func (b *TasksBoard) BackTarget() string {
	if b.projectID == 0 {
		return ""
	}
	if teamID := b.TeamID(); teamID != 0 {
		return "/projects/" + formatID(teamID)
	}
	return "/projects"
}
