package grpc

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// taskKeeperServer is the handler set of the service descriptor.
type taskKeeperServer interface {
	Register(context.Context, *api.RegisterRequest) (*api.AuthResponse, error)
	Login(context.Context, *api.LoginRequest) (*api.AuthResponse, error)
	Ping(context.Context, *api.Empty) (*api.HealthResponse, error)
	Me(context.Context, *api.Empty) (*api.User, error)
	ListTasks(context.Context, *api.ListTasksRequest) (*api.TaskList, error)
	Board(context.Context, *api.Empty) (*api.Board, error)
	GetTask(context.Context, *api.TaskIDRequest) (*api.Task, error)
	CreateTask(context.Context, *api.CreateTaskRequest) (*api.Task, error)
	UpdateTask(context.Context, *api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(context.Context, *api.TaskIDRequest) (*api.Empty, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: proto.ServiceName,
	HandlerType: (*taskKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(proto.MethodRegister, (*GRPCServer).Register),
		unary(proto.MethodLogin, (*GRPCServer).Login),
		unary(proto.MethodPing, (*GRPCServer).Ping),
		unary(proto.MethodMe, (*GRPCServer).Me),
		unary(proto.MethodListTasks, (*GRPCServer).ListTasks),
		unary(proto.MethodBoard, (*GRPCServer).Board),
		unary(proto.MethodGetTask, (*GRPCServer).GetTask),
		unary(proto.MethodCreateTask, (*GRPCServer).CreateTask),
		unary(proto.MethodUpdateTask, (*GRPCServer).UpdateTask),
		unary(proto.MethodDeleteTask, (*GRPCServer).DeleteTask),
	},
	Metadata: "taskkeeper",
}

// unary adapts a typed handler method into the MethodDesc form generated
// stubs would produce.
func unary[Req, Resp any](name string, call func(*GRPCServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := decodeRequest(dec, in); err != nil {
				return nil, err
			}
			s := srv.(*GRPCServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: proto.FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// decodeRequest takes the raw message from the codec and decodes it with the
// same strict rules as HTTP bodies: unknown fields and mistyped values are
// invalid arguments.
func decodeRequest(dec func(any) error, in any) error {
	var raw json.RawMessage
	if err := dec(&raw); err != nil {
		return status.Error(codes.InvalidArgument, "malformed request body")
	}
	if err := api.DecodeBytes(raw, in); err != nil {
		return status.Error(codes.InvalidArgument, api.Message(err))
	}
	return nil
}
