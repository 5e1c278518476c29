package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error onto a gRPC status. Unclassified errors are
// logged and answered with a generic message.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	code := codeFor(err)
	if code == codes.Internal || code == codes.Unavailable {
		s.logger.Error(ctx, "request failed", "error", err)
	}
	return status.Error(code, api.Message(err))
}

func codeFor(err error) codes.Code {
	switch {
	case errors.Is(err, common.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrUnauthenticated):
		return codes.Unauthenticated
	case errors.Is(err, common.ErrVersionConflict):
		return codes.Aborted
	case errors.Is(err, common.ErrConflict):
		return codes.AlreadyExists
	case errors.Is(err, common.ErrorNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrTransient):
		return codes.Unavailable
	}
	return codes.Internal
}
