package views

import (
	"context"
	"strings"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/services"
)

type TeamForm struct {
	Name        string
	Description string
}

func (f TeamForm) Validate() error {
	var v validator
	v.required("name", f.Name)
	v.minLength("name", strings.TrimSpace(f.Name), 2)
	return v.err()
}

// TeamsList backs the teams screen.
type TeamsList struct {
	svc *services.Services
}

func NewTeamsList(svc *services.Services) *TeamsList {
	return &TeamsList{svc: svc}
}

func (v *TeamsList) Load(ctx context.Context) error {
	_, err := v.svc.Teams.Load(ctx)
	return err
}

func (v *TeamsList) Teams() []models.Team {
	return v.svc.Teams.Teams.Items()
}

func (v *TeamsList) Loading() bool {
	return v.svc.Teams.Teams.Loading()
}

// CreateTeam validates the form and creates the team; the teams collection is
// reloaded by the service.
func (v *TeamsList) CreateTeam(ctx context.Context, form TeamForm) (*models.Team, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return v.svc.Teams.Create(ctx, models.CreateTeamRequest{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
	})
}

func (v *TeamsList) DeleteTeam(ctx context.Context, teamID int64) error {
	return v.svc.Teams.Delete(ctx, teamID)
}

func (v *TeamsList) AddMember(ctx context.Context, teamID int64, email string) error {
	email = strings.TrimSpace(email)
	var val validator
	val.required("email", email)
	val.email("email", email)
	if err := val.err(); err != nil {
		return err
	}
	return v.svc.Teams.AddMember(ctx, teamID, email)
}

func (v *TeamsList) RemoveMember(ctx context.Context, teamID, userID int64) error {
	return v.svc.Teams.RemoveMember(ctx, teamID, userID)
}

func (v *TeamsList) Members(ctx context.Context, teamID int64) ([]models.Member, error) {
	return v.svc.Teams.Members(ctx, teamID)
}

// ProjectsTarget is where selecting a team navigates to.
func (v *TeamsList) ProjectsTarget(teamID int64) string {
	return "/projects/" + formatID(teamID)
}
