package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/ruth8415/TeamTasks/config"
	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/store"
)

type CommentsService struct {
	client   *Client
	Comments *store.Collection[models.Comment]

	mu         sync.Mutex
	lastTaskID int64
}

func NewCommentsService(client *Client) *CommentsService {
	return &CommentsService{
		client:   client,
		Comments: store.NewCollection[models.Comment](),
	}
}

// Load fetches the comments of one task; the collection only ever holds one task's comments.
func (s *CommentsService) Load(ctx context.Context, taskID int64) ([]models.Comment, error) {
	s.mu.Lock()
	s.lastTaskID = taskID
	s.mu.Unlock()

	query := url.Values{"taskId": {strconv.FormatInt(taskID, 10)}}
	comments, err := loadInto(ctx, s.client, s.Comments, config.Endpoints.Comments, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments of task %d: %w", taskID, err)
	}
	return comments, nil
}

func (s *CommentsService) reload(ctx context.Context) error {
	s.mu.Lock()
	taskID := s.lastTaskID
	s.mu.Unlock()
	if taskID == 0 {
		return nil
	}
	_, err := s.Load(ctx, taskID)
	return err
}

func (s *CommentsService) Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	var comment models.Comment
	if err := s.client.Post(ctx, config.Endpoints.Comments, req, &comment); err != nil {
		return nil, fmt.Errorf("failed to add comment to task %d: %w", req.TaskID, err)
	}

	s.mu.Lock()
	s.lastTaskID = req.TaskID
	s.mu.Unlock()
	reloadAfter(ctx, "comments", s.reload)
	return &comment, nil
}

func (s *CommentsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.Delete(ctx, idPath(config.Endpoints.Comments, id)); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	reloadAfter(ctx, "comments", s.reload)
	return nil
}
