package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// GRPCClient talks to the TaskKeeper gRPC API. The access token obtained by
// Register or Login is kept in memory only and attached to every call.
type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.token(); token != "" && !proto.IsPublic(method) {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewTaskKeeperClient creates a client for endpointURL. Every call is bounded
// by timeout when it is positive. Extra dial options are appended to the
// defaults.
func NewTaskKeeperClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(proto.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) IsLoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) invoke(ctx context.Context, method string, req, resp any) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return mapError(s.conn.Invoke(ctx, proto.FullMethod(method), req, resp))
}

func (s *GRPCClient) Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	req := &api.RegisterRequest{Name: name, Email: email, Password: password}
	if err := s.invoke(ctx, proto.MethodRegister, req, &resp); err != nil {
		return nil, err
	}
	s.setToken(resp.Token)
	return &resp, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	req := &api.LoginRequest{Email: email, Password: password}
	if err := s.invoke(ctx, proto.MethodLogin, req, &resp); err != nil {
		return nil, err
	}
	s.setToken(resp.Token)
	return &resp, nil
}

// Logout forgets the access token. Tokens are stateless, so nothing is sent
// to the server.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	var resp api.HealthResponse
	if err := s.invoke(ctx, proto.MethodPing, &api.Empty{}, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	var resp api.User
	if err := s.invoke(ctx, proto.MethodMe, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context, req api.ListTasksRequest) (*api.TaskList, error) {
	var resp api.TaskList
	if err := s.invoke(ctx, proto.MethodListTasks, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Board(ctx context.Context) (*api.Board, error) {
	var resp api.Board
	if err := s.invoke(ctx, proto.MethodBoard, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) GetTask(ctx context.Context, id string) (*api.Task, error) {
	var resp api.Task
	if err := s.invoke(ctx, proto.MethodGetTask, &api.TaskIDRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	var resp api.Task
	if err := s.invoke(ctx, proto.MethodCreateTask, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, req api.UpdateTaskRequest) (*api.Task, error) {
	var resp api.Task
	if err := s.invoke(ctx, proto.MethodUpdateTask, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	var resp api.Empty
	return s.invoke(ctx, proto.MethodDeleteTask, &api.TaskIDRequest{ID: id}, &resp)
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}
