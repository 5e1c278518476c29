package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
)

// getSimpleText, getMultiline and getPassword point to the interactive input
// helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Register prompts for a name, an email and a password, creates the
// account and keeps the session.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	resp, err := a.client.Register(ctx, name, email, string(password))
	if err != nil {
		a.noteOffline(err)
		return err
	}
	a.startSession(resp)
	fmt.Fprintf(a.out, "Registered as %s\n", resp.User.Email)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		a.noteOffline(err)
		return err
	}
	a.startSession(resp)
	fmt.Fprintf(a.out, "Logged in as %s\n", resp.User.Email)
	return nil
}

// Logout drops the token held in memory. Nothing is sent to the server.
func (a *App) Logout(context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) startSession(resp *api.AuthResponse) {
	a.userName = resp.User.Email
	if resp.User.Name != "" {
		a.userName = resp.User.Name
	}
	a.setMode(ModeOnline)
}

func (a *App) noteOffline(err error) {
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
	}
}
