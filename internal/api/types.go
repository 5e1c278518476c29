// Package api defines the JSON wire types shared by the HTTP API, the gRPC
// API and the client, plus strict request decoding.
package api

import (
	"encoding/json"
	"time"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public view of an account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Task is a task as returned to its owner. DueDate is YYYY-MM-DD.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	AssignedTo  User      `json:"assignedTo"`
}

type TaskList struct {
	Tasks []Task `json:"tasks"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type Board struct {
	High   []Task `json:"high"`
	Medium []Task `json:"medium"`
	Low    []Task `json:"low"`
}

// ListTasksRequest is the gRPC form of the GET /tasks query string.
// Zero Page and Limit mean the defaults.
type ListTasksRequest struct {
	Page     int    `json:"page,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type TaskIDRequest struct {
	ID string `json:"id"`
}

// CreateTaskRequest accepts userId and assignedTo so that clients echoing a
// task back do not fail, but their values are never used.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority,omitempty"`

	UserID     json.RawMessage `json:"userId,omitempty"`
	AssignedTo json.RawMessage `json:"assignedTo,omitempty"`
}

// UpdateTaskRequest is a partial update. ID is only read by the gRPC API;
// HTTP takes it from the path. Owner fields are rejected.
type UpdateTaskRequest struct {
	ID              string  `json:"id,omitempty"`
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	DueDate         *string `json:"dueDate,omitempty"`
	Status          *string `json:"status,omitempty"`
	Priority        *string `json:"priority,omitempty"`
	ExpectedVersion *int64  `json:"expectedVersion,omitempty"`

	UserID     json.RawMessage `json:"userId,omitempty"`
	AssignedTo json.RawMessage `json:"assignedTo,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Empty is the request or response of calls that carry no payload.
type Empty struct{}
