// Package cli provides the interactive TaskKeeper command-line client.
//
// It wires configuration, the gRPC API client and a read-eval-print loop.
// Typical flow: register or log in, start a background connectivity watcher,
// then manage tasks with list, board, show, add, toggle, priority, edit and
// delete.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
