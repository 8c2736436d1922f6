package models

import "time"

type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	TeamID      int64      `json:"teamId"`
	TeamName    string     `json:"teamName,omitempty"` // popunjava se na klijentu
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TeamID      int64  `json:"teamId"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
