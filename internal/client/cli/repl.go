package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Board(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Toggle(ctx context.Context, args []string) error
	SetPriority(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: list [page] [limit], board, show <id>, add, toggle <id>, " +
		"priority <id> <low|medium|high>, edit <id>, delete <id>, logout, help, exit"
)

// errUsage is returned by commands called with missing or malformed
// arguments. Its message is the usage line.
type errUsage string

func (e errUsage) Error() string { return "Usage: " + string(e) }

// runREPL reads commands line by line from reader until EOF, "exit" or
// "quit". Commands share the reader with their own prompts, so no input is
// buffered away from them. Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "tk %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}

		report(out, dispatch(ctx, a, cmd, args, out))

		if err != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(out, helpLoggedIn)
		} else {
			fmt.Fprintln(out, helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	switch cmd {
	case "logout", "l", "list", "board", "show", "add", "toggle", "priority", "edit", "delete":
		if !a.isLoggedIn() {
			fmt.Fprintln(out, "Please login first")
			return nil
		}
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "l", "list":
		return a.List(ctx, args)
	case "board":
		return a.Board(ctx)
	case "show":
		return a.Show(ctx, args)
	case "add":
		return a.Add(ctx)
	case "toggle":
		return a.Toggle(ctx, args)
	case "priority":
		return a.SetPriority(ctx, args)
	case "edit":
		return a.Edit(ctx, args)
	default:
		return a.Delete(ctx, args)
	}
}

func report(out io.Writer, err error) {
	if err == nil {
		return
	}
	var usage errUsage
	switch {
	case errors.As(err, &usage):
		fmt.Fprintln(out, usage.Error())
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(out, "Server unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(out, "Not authorized:", err)
	case errors.Is(err, client.ErrConflict):
		fmt.Fprintln(out, "Conflict:", err)
	default:
		fmt.Fprintln(out, "Error:", err)
	}
}
