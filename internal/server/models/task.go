package models

import (
	"time"
)

// Status is the completion state of a task. The owner may move freely
// between the two values.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Priority ranks tasks low < medium < high.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank is 1 for low, 2 for medium, 3 for high and 0 for anything else.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// DateLayout is the wire and storage format of due dates.
const DateLayout = time.DateOnly

// Owner is the display lookup of the user a task belongs to.
type Owner struct {
	ID    string
	Name  string
	Email string
}

// Task is a unit of work owned by exactly one user. UserID is set at
// creation and never changes.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueDate     time.Time
	Status      Status
	Priority    Priority
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner Owner
}

// NewTask carries the caller-controlled fields of a task being created.
type NewTask struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
}

// TaskPatch is a partial update: nil fields stay unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *Status
	Priority    *Priority

	// ExpectedVersion, when set, must equal the stored version.
	ExpectedVersion *int64
}

// IsEmpty reports whether the patch changes no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Status == nil && p.Priority == nil
}

// Apply copies the set fields onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// TaskFilter narrows a listing. Nil fields match everything.
type TaskFilter struct {
	Status   *Status
	Priority *Priority
}

// TaskPage is one page of a user's tasks plus the total across all pages.
type TaskPage struct {
	Tasks []*Task
	Total int64
	Page  int
	Limit int
}

// PriorityBoard groups a user's tasks by priority.
type PriorityBoard struct {
	High   []*Task
	Medium []*Task
	Low    []*Task
}

// Add appends t to the column matching its priority.
func (b *PriorityBoard) Add(t *Task) {
	switch t.Priority {
	case PriorityHigh:
		b.High = append(b.High, t)
	case PriorityLow:
		b.Low = append(b.Low, t)
	default:
		b.Medium = append(b.Medium, t)
	}
}
