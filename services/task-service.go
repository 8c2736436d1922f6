package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/store"
)

type TasksService struct {
	client *Client
	Tasks  *store.Collection[models.Task]

	mu            sync.Mutex
	lastProjectID int64
	reloadHook    func(context.Context) error
}

func NewTasksService(client *Client) *TasksService {
	return &TasksService{
		client: client,
		Tasks:  store.NewCollection[models.Task](),
	}
}

func tasksQuery(projectID int64) url.Values {
	if projectID == 0 {
		return nil
	}
	return url.Values{"projectId": {strconv.FormatInt(projectID, 10)}}
}

// Load fetches the tasks of projectID, or every task when projectID is 0, and
// replaces the collection. It also drops any hook set with ReloadWith.
func (s *TasksService) Load(ctx context.Context, projectID int64) ([]models.Task, error) {
	s.mu.Lock()
	s.lastProjectID = projectID
	s.reloadHook = nil
	s.mu.Unlock()

	tasks, err := loadInto(ctx, s.client, s.Tasks, config.Endpoints.Tasks, tasksQuery(projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

// Fetch is Load without touching the collection.
func (s *TasksService) Fetch(ctx context.Context, projectID int64) ([]models.Task, error) {
	tasks, err := fetch[models.Task](ctx, s.client, config.Endpoints.Tasks, tasksQuery(projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

// ReloadWith makes fn the reload that follows a mutation, for views that fill
// the collection themselves. The next Load clears it.
func (s *TasksService) ReloadWith(fn func(context.Context) error) {
	s.mu.Lock()
	s.reloadHook = fn
	s.mu.Unlock()
}

func (s *TasksService) reload(ctx context.Context) error {
	s.mu.Lock()
	projectID, hook := s.lastProjectID, s.reloadHook
	s.mu.Unlock()
	if hook != nil {
		return hook(ctx)
	}
	_, err := s.Load(ctx, projectID)
	return err
}

func (s *TasksService) Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := s.client.Post(ctx, config.Endpoints.Tasks, req, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %d created in project %d", task.ID, req.ProjectID)
	reloadAfter(ctx, "tasks", s.reload)
	return &task, nil
}

// Update sends a partial update; only non-nil fields of req are changed.
func (s *TasksService) Update(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := s.client.Patch(ctx, idPath(config.Endpoints.Tasks, id), req, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	if req.Status != nil {
		logging.Logger.Infof("Event ID: TASK_STATUS_CHANGED, Description: Task %d moved to %s", id, *req.Status)
	}
	reloadAfter(ctx, "tasks", s.reload)
	return &task, nil
}

func (s *TasksService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, idPath(config.Endpoints.Tasks, id)); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %d deleted", id)
	reloadAfter(ctx, "tasks", s.reload)
	return nil
}

func (s *TasksService) Get(id int64) (models.Task, bool) {
	return s.Tasks.Find(func(t models.Task) bool { return t.ID == id })
}
