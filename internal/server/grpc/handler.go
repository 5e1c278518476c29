package grpc

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/server/convert"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {

	s.logger.Info(ctx, "Registration request")

	result, err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", result.User.ID)
	return authResponse(result), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {

	result, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(result), nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.Empty) (*api.HealthResponse, error) {
	return &api.HealthResponse{Status: "ok"}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *api.Empty) (*api.User, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Me(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := convert.User(*user)
	return &resp, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *api.ListTasksRequest) (*api.TaskList, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	page, limit := req.Page, req.Limit
	if page == 0 {
		page = services.DefaultPage
	}
	if limit == 0 {
		limit = services.DefaultLimit
	}

	result, err := s.tasks.List(ctx, userID, page, limit, convert.Filter(*req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := convert.TaskPage(result)
	return &resp, nil
}

func (s *GRPCServer) Board(ctx context.Context, _ *api.Empty) (*api.Board, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	board, err := s.tasks.Board(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := convert.Board(board)
	return &resp, nil
}

func (s *GRPCServer) GetTask(ctx context.Context, req *api.TaskIDRequest) (*api.Task, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := convert.Task(task)
	return &resp, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.Task, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	in, err := convert.NewTask(*req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	task, err := s.tasks.Create(ctx, userID, in)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Task created", "task_id", task.ID, "user_id", userID)
	resp := convert.Task(task)
	return &resp, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.Task, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	patch, err := convert.Patch(*req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	task, err := s.tasks.Update(ctx, userID, req.ID, patch)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := convert.Task(task)
	return &resp, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *api.TaskIDRequest) (*api.Empty, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Task deleted", "task_id", req.ID, "user_id", userID)
	return &api.Empty{}, nil
}

func callerID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}

func authResponse(r *services.AuthResult) *api.AuthResponse {
	return &api.AuthResponse{Token: r.Token, ExpiresAt: r.ExpiresAt, User: convert.User(r.User)}
}
