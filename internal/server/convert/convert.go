// Package convert maps the JSON wire types of package api to server models
// and back. Both the HTTP and the gRPC transports use it.
package convert

import (
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// NewTask validates the due date of r and builds the create input. Owner
// fields on r are ignored.
func NewTask(r api.CreateTaskRequest) (models.NewTask, error) {
	if strings.TrimSpace(r.DueDate) == "" {
		return models.NewTask{}, common.NewValidationError("dueDate", "is required")
	}
	due, err := api.ParseDate("dueDate", r.DueDate)
	if err != nil {
		return models.NewTask{}, err
	}
	return models.NewTask{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Priority:    models.Priority(r.Priority),
	}, nil
}

// Patch builds a partial update. A request naming the owner is rejected.
func Patch(r api.UpdateTaskRequest) (models.TaskPatch, error) {
	if len(r.UserID) > 0 {
		return models.TaskPatch{}, common.NewValidationError("userId", "task owner cannot be changed")
	}
	if len(r.AssignedTo) > 0 {
		return models.TaskPatch{}, common.NewValidationError("assignedTo", "task owner cannot be changed")
	}

	p := models.TaskPatch{
		Title:           r.Title,
		Description:     r.Description,
		ExpectedVersion: r.ExpectedVersion,
	}
	if r.DueDate != nil {
		due, err := api.ParseDate("dueDate", *r.DueDate)
		if err != nil {
			return models.TaskPatch{}, err
		}
		p.DueDate = &due
	}
	if r.Status != nil {
		s := models.Status(*r.Status)
		p.Status = &s
	}
	if r.Priority != nil {
		pr := models.Priority(*r.Priority)
		p.Priority = &pr
	}
	return p, nil
}

func Filter(r api.ListTasksRequest) models.TaskFilter {
	var f models.TaskFilter
	if r.Status != "" {
		s := models.Status(r.Status)
		f.Status = &s
	}
	if r.Priority != "" {
		p := models.Priority(r.Priority)
		f.Priority = &p
	}
	return f
}

func User(u models.PublicUser) api.User {
	return api.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func Task(t *models.Task) api.Task {
	return api.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.Format(api.DateLayout),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Version:     t.Version,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		AssignedTo:  api.User{ID: t.Owner.ID, Name: t.Owner.Name, Email: t.Owner.Email},
	}
}

func Tasks(list []*models.Task) []api.Task {
	out := make([]api.Task, 0, len(list))
	for _, t := range list {
		out = append(out, Task(t))
	}
	return out
}

func TaskPage(p *models.TaskPage) api.TaskList {
	return api.TaskList{Tasks: Tasks(p.Tasks), Total: p.Total, Page: p.Page, Limit: p.Limit}
}

func Board(b *models.PriorityBoard) api.Board {
	return api.Board{High: Tasks(b.High), Medium: Tasks(b.Medium), Low: Tasks(b.Low)}
}
