package services

import (
	"context"

	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/models"
)

type HealthService struct {
	client *Client
}

func NewHealthService(client *Client) *HealthService {
	return &HealthService{client: client}
}

func (s *HealthService) Check(ctx context.Context) (*models.Health, error) {
	var health models.Health
	if err := s.client.Get(ctx, config.Endpoints.Health, nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
