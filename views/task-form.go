package views

import (
	"context"
	"strings"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/services"
)

// TaskForm is the create/edit task dialog. When the board has no project the
// user must pick a team and then one of that team's projects.
type TaskForm struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	TeamID      int64
	ProjectID   int64

	boardProjectID int64
	editing        *models.Task
}

// NewTaskForm opens a create form. status may be empty for the default.
func NewTaskForm(boardProjectID int64, status models.TaskStatus) *TaskForm {
	if status == "" {
		status = models.StatusTodo
	}
	return &TaskForm{
		Status:         status,
		Priority:       models.PriorityNormal,
		ProjectID:      boardProjectID,
		boardProjectID: boardProjectID,
	}
}

// EditTaskForm opens an edit form pre-filled from task.
func EditTaskForm(task models.Task) *TaskForm {
	t := task
	return &TaskForm{
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		ProjectID:      task.ProjectID,
		boardProjectID: task.ProjectID,
		editing:        &t,
	}
}

func (f *TaskForm) IsEditMode() bool {
	return f.editing != nil
}

// NeedsProjectSelection reports whether team and project must be chosen.
func (f *TaskForm) NeedsProjectSelection() bool {
	return f.editing == nil && f.boardProjectID == 0
}

// SelectTeam changes the selected team and clears the project choice.
func (f *TaskForm) SelectTeam(teamID int64) {
	f.TeamID = teamID
	f.ProjectID = 0
}

// FilteredProjects returns the projects of teamID; none when no team is chosen.
func FilteredProjects(projects []models.Project, teamID int64) []models.Project {
	if teamID == 0 {
		return []models.Project{}
	}
	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.TeamID == teamID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (f *TaskForm) Validate() error {
	var v validator
	title := strings.TrimSpace(f.Title)
	v.required("title", title)
	v.minLength("title", title, 3)
	if !f.Status.Valid() {
		v.fail("status", "must be one of todo, in_progress, done")
	}
	if !f.Priority.Valid() {
		v.fail("priority", "must be one of low, normal, high")
	}
	if f.NeedsProjectSelection() {
		if f.TeamID == 0 {
			v.fail("teamId", "is required")
		}
		if f.ProjectID == 0 {
			v.fail("projectId", "is required")
		}
	}
	return v.err()
}

func (f *TaskForm) CreateRequest() (models.CreateTaskRequest, error) {
	if err := f.Validate(); err != nil {
		return models.CreateTaskRequest{}, err
	}
	projectID := f.ProjectID
	if projectID == 0 {
		projectID = f.boardProjectID
	}
	return models.CreateTaskRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Status:      f.Status,
		Priority:    f.Priority,
		ProjectID:   projectID,
	}, nil
}

// UpdateRequest carries only the fields that differ from the task being edited.
func (f *TaskForm) UpdateRequest() (models.UpdateTaskRequest, error) {
	if err := f.Validate(); err != nil {
		return models.UpdateTaskRequest{}, err
	}
	var req models.UpdateTaskRequest
	orig := f.editing
	if orig == nil {
		orig = &models.Task{}
	}
	if title := strings.TrimSpace(f.Title); title != orig.Title {
		req.Title = &title
	}
	if desc := strings.TrimSpace(f.Description); desc != orig.Description {
		req.Description = &desc
	}
	if f.Status != orig.Status {
		status := f.Status
		req.Status = &status
	}
	if f.Priority != orig.Priority {
		priority := f.Priority
		req.Priority = &priority
	}
	return req, nil
}

// Submit creates or updates the task. An edit with no changes makes no request.
func (f *TaskForm) Submit(ctx context.Context, tasks *services.TasksService) (*models.Task, error) {
	if !f.IsEditMode() {
		req, err := f.CreateRequest()
		if err != nil {
			return nil, err
		}
		return tasks.Create(ctx, req)
	}

	req, err := f.UpdateRequest()
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		t := *f.editing
		return &t, nil
	}
	return tasks.Update(ctx, f.editing.ID, req)
}
