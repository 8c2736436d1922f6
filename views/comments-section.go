package views

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/services"
)

// CommentsSection shows and adds the comments of one task.
type CommentsSection struct {
	svc        *services.Services
	taskID     int64
	submitting atomic.Bool
}

func NewCommentsSection(svc *services.Services, taskID int64) *CommentsSection {
	return &CommentsSection{svc: svc, taskID: taskID}
}

func (c *CommentsSection) TaskID() int64 {
	return c.taskID
}

func (c *CommentsSection) Load(ctx context.Context) error {
	_, err := c.svc.Comments.Load(ctx, c.taskID)
	return err
}

// Comments returns the loaded comments belonging to this task.
func (c *CommentsSection) Comments() []models.Comment {
	all := c.svc.Comments.Comments.Items()
	out := make([]models.Comment, 0, len(all))
	for _, cm := range all {
		if cm.TaskID == c.taskID {
			out = append(out, cm)
		}
	}
	return out
}

func (c *CommentsSection) Loading() bool {
	return c.svc.Comments.Comments.Loading()
}

func (c *CommentsSection) Submitting() bool {
	return c.submitting.Load()
}

// Submit trims body and posts it; blank bodies are rejected before any request.
func (c *CommentsSection) Submit(ctx context.Context, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	var v validator
	v.required("body", body)
	if err := v.err(); err != nil {
		return nil, err
	}

	c.submitting.Store(true)
	defer c.submitting.Store(false)
	return c.svc.Comments.Create(ctx, models.CreateCommentRequest{TaskID: c.taskID, Body: body})
}

func (c *CommentsSection) Delete(ctx context.Context, commentID int64) error {
	return c.svc.Comments.Delete(ctx, commentID)
}
