package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/store"
)

type TeamsService struct {
	client *Client
	Teams  *store.Collection[models.Team]
}

func NewTeamsService(client *Client) *TeamsService {
	return &TeamsService{
		client: client,
		Teams:  store.NewCollection[models.Team](),
	}
}

func (s *TeamsService) Load(ctx context.Context) ([]models.Team, error) {
	teams, err := loadInto(ctx, s.client, s.Teams, config.Endpoints.Teams, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	return teams, nil
}

func (s *TeamsService) reload(ctx context.Context) error {
	_, err := s.Load(ctx)
	return err
}

func (s *TeamsService) Create(ctx context.Context, req models.CreateTeamRequest) (*models.Team, error) {
	var team models.Team
	if err := s.client.Post(ctx, config.Endpoints.Teams, req, &team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	logging.Logger.Infof("Event ID: TEAM_CREATED, Description: Team %d (%s) created", team.ID, team.Name)
	reloadAfter(ctx, "teams", s.reload)
	return &team, nil
}

func (s *TeamsService) Update(ctx context.Context, id int64, req models.UpdateTeamRequest) (*models.Team, error) {
	var team models.Team
	if err := s.client.Patch(ctx, idPath(config.Endpoints.Teams, id), req, &team); err != nil {
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}
	reloadAfter(ctx, "teams", s.reload)
	return &team, nil
}

func (s *TeamsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, idPath(config.Endpoints.Teams, id)); err != nil {
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	logging.Logger.Infof("Event ID: TEAM_DELETED, Description: Team %d deleted", id)
	reloadAfter(ctx, "teams", s.reload)
	return nil
}

func (s *TeamsService) Members(ctx context.Context, teamID int64) ([]models.Member, error) {
	var members []models.Member
	if err := s.client.Get(ctx, idPath(config.Endpoints.Teams, teamID, "members"), nil, &members); err != nil {
		return nil, fmt.Errorf("failed to load members of team %d: %w", teamID, err)
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}

func (s *TeamsService) AddMember(ctx context.Context, teamID int64, email string) error {
	path := idPath(config.Endpoints.Teams, teamID, "members")
	if err := s.client.Post(ctx, path, models.AddMemberRequest{Email: email}, nil); err != nil {
		return fmt.Errorf("failed to add %s to team %d: %w", email, teamID, err)
	}
	logging.Logger.Infof("Event ID: TEAM_MEMBER_ADDED, Description: %s added to team %d", email, teamID)
	reloadAfter(ctx, "teams", s.reload)
	return nil
}

func (s *TeamsService) RemoveMember(ctx context.Context, teamID, userID int64) error {
	path := idPath(config.Endpoints.Teams, teamID, "members", strconv.FormatInt(userID, 10))
	if err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to remove user %d from team %d: %w", userID, teamID, err)
	}
	reloadAfter(ctx, "teams", s.reload)
	return nil
}

// Get returns a loaded team by id.
func (s *TeamsService) Get(id int64) (models.Team, bool) {
	return s.Teams.Find(func(t models.Team) bool { return t.ID == id })
}
