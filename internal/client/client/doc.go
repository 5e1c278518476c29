// Package client implements the TaskKeeper gRPC client used by the CLI.
//
// Messages are the JSON types of package api sent through the codec
// registered by package proto, so no generated stubs are involved. Server
// statuses are translated into the sentinels ErrUnauthorized, ErrNotFound,
// ErrConflict, ErrInvalidInput and ErrUnavailable.
package client
