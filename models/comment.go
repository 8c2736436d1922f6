package models

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"taskId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *User     `json:"author,omitempty"`
}

type CreateCommentRequest struct {
	TaskID int64  `json:"taskId"`
	Body   string `json:"body"`
}
