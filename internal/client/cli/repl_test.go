package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(call string, args ...string) error {
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.loggedIn = true
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) List(_ context.Context, args []string) error { return f.record("list", args...) }
func (f *fakeExec) Board(context.Context) error                 { return f.record("board") }
func (f *fakeExec) Show(_ context.Context, args []string) error { return f.record("show", args...) }
func (f *fakeExec) Add(context.Context) error                   { return f.record("add") }
func (f *fakeExec) Toggle(_ context.Context, args []string) error {
	return f.record("toggle", args...)
}
func (f *fakeExec) SetPriority(_ context.Context, args []string) error {
	return f.record("priority", args...)
}
func (f *fakeExec) Edit(_ context.Context, args []string) error   { return f.record("edit", args...) }
func (f *fakeExec) Delete(_ context.Context, args []string) error { return f.record("delete", args...) }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"list",
		"login",
		"help",
		"list 2 5",
		"board",
		"show abc",
		"add",
		"toggle abc",
		"priority abc high",
		"edit abc",
		"delete abc",
		"foobar",
		"logout",
		"exit",
		"board",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "(status)" }, rdr(input), &out)

	assert.Equal(t, []string{
		"login", "list 2 5", "board", "show abc", "add", "toggle abc",
		"priority abc high", "edit abc", "delete abc", "logout",
	}, exec.calls)

	s := out.String()
	assert.Contains(t, s, "tk (status)> ")
	assert.Contains(t, s, helpLoggedOut)
	assert.Contains(t, s, helpLoggedIn)
	assert.Contains(t, s, "Please login first")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("\n\nboard"), &out)

	assert.Equal(t, []string{"board"}, exec.calls)
	assert.NotContains(t, out.String(), "Bye!")
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{loggedIn: true, err: &client.Error{Kind: client.ErrNotFound, Message: "task not found"}}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("show x\nboard\nquit\n"), &out)

	assert.Equal(t, []string{"show x", "board"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out.String(), "Error: task not found"))
}

func TestReport(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errUsage("show <id>"), "Usage: show <id>\n"},
		{client.ErrUnavailable, "Server unavailable, try again later\n"},
		{&client.Error{Kind: client.ErrUnauthorized, Message: "invalid credentials"}, "Not authorized: invalid credentials\n"},
		{&client.Error{Kind: client.ErrConflict, Message: "version conflict"}, "Conflict: version conflict\n"},
		{errors.New("boom"), "Error: boom\n"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		report(&out, tt.err)
		assert.Equal(t, tt.want, out.String())
	}

	var out bytes.Buffer
	report(&out, nil)
	assert.Empty(t, out.String())
}
