package views

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/services"
)

type ProjectForm struct {
	Name        string
	Description string
	TeamID      int64
}

func (f ProjectForm) Validate() error {
	var v validator
	v.required("name", f.Name)
	v.minLength("name", strings.TrimSpace(f.Name), 2)
	if f.TeamID == 0 {
		v.fail("teamId", "is required")
	}
	return v.err()
}

// ProjectsList backs the projects screen. A zero teamID shows every project
// enriched with its team name; otherwise only that team's projects.
type ProjectsList struct {
	svc    *services.Services
	teamID int64
}

func NewProjectsList(svc *services.Services, teamID int64) *ProjectsList {
	return &ProjectsList{svc: svc, teamID: teamID}
}

func (v *ProjectsList) TeamID() int64 {
	return v.teamID
}

// Load fills the projects collection. The all-projects list commits only the
// enriched projects and becomes the reload that follows project mutations.
func (v *ProjectsList) Load(ctx context.Context) error {
	if v.teamID != 0 {
		v.svc.CurrentTeam.SetCurrentTeam(v.teamID)
		_, err := v.svc.Projects.Load(ctx, 0)
		return err
	}

	var (
		projects []models.Project
		teams    []models.Team
	)
	coll := v.svc.Projects.Projects
	ticket := coll.Begin()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = v.svc.Projects.Fetch(gctx, 0)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = v.svc.Teams.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		coll.Fail(ticket)
		return err
	}

	coll.Commit(ticket, services.EnrichProjects(projects, teams))
	v.svc.Projects.ReloadWith(v.Load)
	return nil
}

// Projects returns the loaded projects, narrowed to the team when one is selected.
func (v *ProjectsList) Projects() []models.Project {
	all := v.svc.Projects.Projects.Items()
	if v.teamID == 0 {
		return all
	}
	filtered := make([]models.Project, 0, len(all))
	for _, p := range all {
		if p.TeamID == v.teamID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *ProjectsList) Loading() bool {
	return v.svc.Projects.Projects.Loading()
}

// CreateProject creates a project in the list's team unless the form names one.
// The projects service reloads the list afterwards.
func (v *ProjectsList) CreateProject(ctx context.Context, form ProjectForm) (*models.Project, error) {
	if form.TeamID == 0 {
		form.TeamID = v.teamID
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return v.svc.Projects.Create(ctx, models.CreateProjectRequest{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		TeamID:      form.TeamID,
	})
}

func (v *ProjectsList) DeleteProject(ctx context.Context, projectID int64) error {
	if projectID == 0 {
		return errors.New("project id is required")
	}
	return v.svc.Projects.Delete(ctx, projectID)
}

// TasksTarget is where selecting a project navigates to.
func (v *ProjectsList) TasksTarget(projectID int64) string {
	return "/tasks/" + formatID(projectID)
}

// BackTarget is where leaving the projects screen navigates to.
func (v *ProjectsList) BackTarget() string {
	return "/teams"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
