package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Paging limits of TaskService.List.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

// TaskService implements task CRUD for an already authenticated user.
// Every method takes the caller's user id; tasks owned by anybody else are
// reported as common.ErrorNotFound.
type TaskService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
	now          func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TaskService {
	return &TaskService{
		db:           db,
		repomanager:  m,
		storeTimeout: cfg.StoreTimeout,
		now:          time.Now,
	}
}

// List returns one page of userID's tasks, newest first. Pages past the end
// are empty.
func (s *TaskService) List(ctx context.Context, userID string, page, limit int, filter models.TaskFilter) (*models.TaskPage, error) {
	if page < 1 {
		return nil, common.NewValidationError("page", "must be a positive integer")
	}
	if limit < 1 || limit > MaxLimit {
		return nil, common.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxLimit))
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	repo := s.repomanager.Tasks(s.db)

	total, err := repo.Count(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting tasks: %w", dbx.Classify(err))
	}

	result := &models.TaskPage{Tasks: []*models.Task{}, Total: total, Page: page, Limit: limit}

	offset := int64(page-1) * int64(limit)
	if offset >= total {
		return result, nil
	}

	list, err := repo.List(ctx, userID, filter, limit, int(offset))
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", dbx.Classify(err))
	}
	result.Tasks = list

	return result, nil
}

// Board returns all of userID's tasks grouped by priority.
func (s *TaskService) Board(ctx context.Context, userID string) (*models.PriorityBoard, error) {
	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	list, err := s.repomanager.Tasks(s.db).List(ctx, userID, models.TaskFilter{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", dbx.Classify(err))
	}

	board := &models.PriorityBoard{High: []*models.Task{}, Medium: []*models.Task{}, Low: []*models.Task{}}
	for _, t := range list {
		board.Add(t)
	}

	return board, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	if !isTaskID(taskID) {
		return nil, common.ErrorNotFound
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("error getting task: %w", dbx.Classify(err))
	}

	return task, nil
}

// Create stores a new pending task owned by userID. An empty priority
// means medium.
func (s *TaskService) Create(ctx context.Context, userID string, in models.NewTask) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if in.DueDate.IsZero() {
		return nil, common.NewValidationError("dueDate", "is required")
	}
	if !in.Priority.Valid() {
		return nil, common.NewValidationError("priority", "must be one of low, medium, high")
	}

	now := s.now().UTC()
	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     truncateDate(in.DueDate),
		Status:      models.StatusPending,
		Priority:    in.Priority,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", dbx.Classify(err))
	}

	return created, nil
}

// Update applies patch to the task under a row lock. When the patch names
// an expected version that differs from the stored one the update fails
// with common.ErrVersionConflict.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	if !isTaskID(taskID) {
		return nil, common.ErrorNotFound
	}
	if !patch.IsEmpty() {
		if err := validatePatch(&patch); err != nil {
			return nil, err
		}
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		current, err := repo.GetForUpdate(ctx, userID, taskID)
		if err != nil {
			return err
		}
		if patch.ExpectedVersion != nil && *patch.ExpectedVersion != current.Version {
			return common.ErrVersionConflict
		}

		patch.Apply(current)
		current.UpdatedAt = s.now().UTC()

		updated, err = repo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating task: %w", dbx.Classify(err))
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if !isTaskID(taskID) {
		return common.ErrorNotFound
	}

	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.repomanager.Tasks(s.db).Delete(ctx, userID, taskID); err != nil {
		return fmt.Errorf("error deleting task: %w", dbx.Classify(err))
	}

	return nil
}

func isTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateTitle(title string) error {
	if title == "" {
		return common.NewValidationError("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return common.NewValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleLength))
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return common.NewValidationError("description", "must not be empty")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return common.NewValidationError("description", fmt.Sprintf("must be at most %d characters", maxDescriptionLength))
	}
	return nil
}

func validatePatch(p *models.TaskPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
		p.Title = &title
	}
	if p.Description != nil {
		description := strings.TrimSpace(*p.Description)
		if err := validateDescription(description); err != nil {
			return err
		}
		p.Description = &description
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			return common.NewValidationError("dueDate", "must be a date")
		}
		due := truncateDate(*p.DueDate)
		p.DueDate = &due
	}
	if p.Status != nil && !p.Status.Valid() {
		return common.NewValidationError("status", "must be one of pending, completed")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return common.NewValidationError("priority", "must be one of low, medium, high")
	}
	return nil
}

func validateFilter(f models.TaskFilter) error {
	if f.Status != nil && !f.Status.Valid() {
		return common.NewValidationError("status", "must be one of pending, completed")
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return common.NewValidationError("priority", "must be one of low, medium, high")
	}
	return nil
}
