// Package tasks is the task store. Every read and write is scoped by the
// owning user id, so a task owned by someone else behaves exactly like a
// missing one.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, userID, id string) (*models.Task, error)
	// GetForUpdate is GetByID that also locks the row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, userID, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
	// List returns tasks newest first. A non-positive limit returns all.
	List(ctx context.Context, userID string, filter models.TaskFilter, limit, offset int) ([]*models.Task, error)
	Count(ctx context.Context, userID string, filter models.TaskFilter) (int64, error)
}
