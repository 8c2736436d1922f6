package services

import (
	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/utils"
)

// Services bundles the entity services that share one Client. Views hold a
// *Services the way components inject the root services.
type Services struct {
	Client      *Client
	Auth        *AuthService
	Health      *HealthService
	Teams       *TeamsService
	Projects    *ProjectsService
	Tasks       *TasksService
	Comments    *CommentsService
	CurrentTeam *CurrentTeam
}

func New(client *Client) *Services {
	return &Services{
		Client:      client,
		Auth:        NewAuthService(client),
		Health:      NewHealthService(client),
		Teams:       NewTeamsService(client),
		Projects:    NewProjectsService(client),
		Tasks:       NewTasksService(client),
		Comments:    NewCommentsService(client),
		CurrentTeam: NewCurrentTeam(),
	}
}

// NewFromConfig wires a Client from cfg around session.
func NewFromConfig(cfg config.Config, session *Session) *Services {
	httpClient := utils.NewHTTPClient(cfg.HTTPTimeout)
	breaker := NewBreaker("TeamTasksAPI", cfg.BreakerFailures, cfg.BreakerTimeout)
	return New(NewClient(cfg.BaseURL(), httpClient, breaker, session))
}
