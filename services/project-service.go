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

type ProjectsService struct {
	client   *Client
	Projects *store.Collection[models.Project]

	mu         sync.Mutex
	lastTeamID int64
	reloadHook func(context.Context) error
}

func NewProjectsService(client *Client) *ProjectsService {
	return &ProjectsService{
		client:   client,
		Projects: store.NewCollection[models.Project](),
	}
}

func projectsQuery(teamID int64) url.Values {
	if teamID == 0 {
		return nil
	}
	return url.Values{"teamId": {strconv.FormatInt(teamID, 10)}}
}

// Load fetches the projects of teamID, or all projects when teamID is 0, and
// replaces the collection. It also drops any hook set with ReloadWith.
func (s *ProjectsService) Load(ctx context.Context, teamID int64) ([]models.Project, error) {
	s.mu.Lock()
	s.lastTeamID = teamID
	s.reloadHook = nil
	s.mu.Unlock()

	projects, err := loadInto(ctx, s.client, s.Projects, config.Endpoints.Projects, projectsQuery(teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return projects, nil
}

// Fetch is Load without touching the collection.
func (s *ProjectsService) Fetch(ctx context.Context, teamID int64) ([]models.Project, error) {
	projects, err := fetch[models.Project](ctx, s.client, config.Endpoints.Projects, projectsQuery(teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return projects, nil
}

// ReloadWith makes fn the reload that follows a mutation. The next Load clears it.
func (s *ProjectsService) ReloadWith(fn func(context.Context) error) {
	s.mu.Lock()
	s.reloadHook = fn
	s.mu.Unlock()
}

func (s *ProjectsService) reload(ctx context.Context) error {
	s.mu.Lock()
	teamID, hook := s.lastTeamID, s.reloadHook
	s.mu.Unlock()
	if hook != nil {
		return hook(ctx)
	}
	_, err := s.Load(ctx, teamID)
	return err
}

func (s *ProjectsService) Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.client.Post(ctx, config.Endpoints.Projects, req, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %d (%s) created in team %d", project.ID, project.Name, req.TeamID)
	reloadAfter(ctx, "projects", s.reload)
	return &project, nil
}

func (s *ProjectsService) Update(ctx context.Context, id int64, req models.UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.client.Patch(ctx, idPath(config.Endpoints.Projects, id), req, &project); err != nil {
		return nil, fmt.Errorf("failed to update project %d: %w", id, err)
	}
	reloadAfter(ctx, "projects", s.reload)
	return &project, nil
}

func (s *ProjectsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, idPath(config.Endpoints.Projects, id)); err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %d deleted", id)
	reloadAfter(ctx, "projects", s.reload)
	return nil
}

func (s *ProjectsService) Get(id int64) (models.Project, bool) {
	return s.Projects.Find(func(p models.Project) bool { return p.ID == id })
}
