// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered identity. PasswordHash never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the subset of User safe to return to clients.
type PublicUser struct {
	ID    string
	Name  string
	Email string
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
