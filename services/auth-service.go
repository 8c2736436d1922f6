package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/models"
)

var ErrNotLoggedIn = errors.New("not logged in")

type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	return s.authenticate(ctx, config.Endpoints.Login, req)
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return s.authenticate(ctx, config.Endpoints.Register, req)
}

func (s *AuthService) authenticate(ctx context.Context, path string, body any) (*models.User, error) {
	var resp models.AuthResponse
	if err := s.client.Post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%s returned no token", path)
	}
	if err := s.client.Session().Save(resp); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: USER_AUTHENTICATED, Description: Signed in as %s", resp.User.Email)
	return &resp.User, nil
}

// Me fetches the signed-in user and refreshes the session's CurrentUser.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	if s.client.Session().Token() == "" {
		return nil, ErrNotLoggedIn
	}
	var user models.User
	if err := s.client.Get(ctx, config.Endpoints.Me, nil, &user); err != nil {
		return nil, err
	}
	if err := s.client.Session().SetUser(user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Logout() error {
	logging.Logger.Info("Event ID: USER_LOGOUT, Description: Clearing session")
	return s.client.Session().Clear()
}

func (s *AuthService) IsAuthenticated(now time.Time) bool {
	return !s.client.Session().Expired(now)
}
