package services

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Users is the auth surface consumed by the transports.
type Users interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, userID string) (*models.PublicUser, error)
}

// Tasks is the task surface consumed by the transports.
type Tasks interface {
	List(ctx context.Context, userID string, page, limit int, filter models.TaskFilter) (*models.TaskPage, error)
	Board(ctx context.Context, userID string) (*models.PriorityBoard, error)
	Get(ctx context.Context, userID, taskID string) (*models.Task, error)
	Create(ctx context.Context, userID string, in models.NewTask) (*models.Task, error)
	Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

var (
	_ Users = (*UserService)(nil)
	_ Tasks = (*TaskService)(nil)
)
