package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
)

// List prints one page of tasks. Optional args are page and limit.
func (a *App) List(ctx context.Context, args []string) error {
	var req api.ListTasksRequest
	if len(args) > 2 {
		return errUsage("list [page] [limit]")
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errUsage("list [page] [limit]")
		}
		req.Page = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return errUsage("list [page] [limit]")
		}
		req.Limit = n
	}

	list, err := a.client.ListTasks(ctx, req)
	if err != nil {
		return err
	}
	renderList(a.out, list)
	return nil
}

func (a *App) Board(ctx context.Context) error {
	board, err := a.client.Board(ctx)
	if err != nil {
		return err
	}
	renderBoard(a.out, board)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("show <id>")
	}
	t, err := a.client.GetTask(ctx, args[0])
	if err != nil {
		return err
	}
	renderTask(a.out, t)
	return nil
}

// Add prompts for the fields of a new task. An empty priority leaves the
// server default.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	due, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	priority, err := getSimpleText(a.reader, "Priority (low|medium|high, empty for medium)", a.out)
	if err != nil {
		return err
	}

	t, err := a.client.CreateTask(ctx, api.CreateTaskRequest{
		Title:       title,
		Description: description,
		DueDate:     due,
		Priority:    priority,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created task %s\n", t.ID)
	return nil
}

// Toggle flips a task between pending and completed. The update carries the
// version that was read, so a concurrent change is reported as a conflict.
func (a *App) Toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("toggle <id>")
	}
	t, err := a.client.GetTask(ctx, args[0])
	if err != nil {
		return err
	}

	next := "completed"
	if t.Status == "completed" {
		next = "pending"
	}
	updated, err := a.client.UpdateTask(ctx, api.UpdateTaskRequest{
		ID:              t.ID,
		Status:          &next,
		ExpectedVersion: &t.Version,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task %s is now %s\n", updated.ID, updated.Status)
	return nil
}

func (a *App) SetPriority(ctx context.Context, args []string) error {
	const usage = errUsage("priority <id> <low|medium|high>")
	if len(args) != 2 {
		return usage
	}
	level := args[1]
	switch level {
	case "low", "medium", "high":
	default:
		return usage
	}

	updated, err := a.client.UpdateTask(ctx, api.UpdateTaskRequest{ID: args[0], Priority: &level})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task %s priority is now %s\n", updated.ID, updated.Priority)
	return nil
}

// Edit prompts for a new title, description and due date. Empty answers
// keep the current value; only changed fields are sent.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("edit <id>")
	}
	t, err := a.client.GetTask(ctx, args[0])
	if err != nil {
		return err
	}

	req := api.UpdateTaskRequest{ID: t.ID, ExpectedVersion: &t.Version}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", t.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" && title != t.Title {
		req.Title = &title
	}

	description, err := getMultiline(a.reader, "Description (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if description != "" && description != t.Description {
		req.Description = &description
	}

	due, err := getSimpleText(a.reader, fmt.Sprintf("Due date [%s]", t.DueDate), a.out)
	if err != nil {
		return err
	}
	if due != "" && due != t.DueDate {
		req.DueDate = &due
	}

	if req.Title == nil && req.Description == nil && req.DueDate == nil {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	updated, err := a.client.UpdateTask(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated task %s (version %d)\n", updated.ID, updated.Version)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("delete <id>")
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete task %s?", args[0]), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.client.DeleteTask(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
