package controller

import (
	"context"

	"github.com/ormenio/engine/controller/pb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// ServerShim exposes a Server as a pb.ControllerClient without a network hop.
// Lock tokens set with pb.ContextWithLockToken are carried over to the server
// side context.
type ServerShim struct {
	server *Server
}

// NewInMemory returns a client that calls server directly.
func NewInMemory(server *Server) pb.ControllerClient {
	return &ServerShim{
		server: server,
	}
}

// incoming turns outgoing metadata into incoming metadata, as the grpc
// transport would.
func incoming(ctx context.Context) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		return ctx
	}
	return metadata.NewIncomingContext(ctx, md)
}

func (s *ServerShim) Lock(ctx context.Context, req *pb.LockRequest, opts ...grpc.CallOption) (*pb.LockResponse, error) {
	return s.server.Lock(incoming(ctx), req)
}

func (s *ServerShim) Unlock(ctx context.Context, req *pb.UnlockRequest, opts ...grpc.CallOption) (*pb.UnlockResponse, error) {
	return s.server.Unlock(incoming(ctx), req)
}

func (s *ServerShim) Pop(ctx context.Context, req *pb.PopRequest, opts ...grpc.CallOption) (*pb.PopResponse, error) {
	return s.server.Pop(incoming(ctx), req)
}

func (s *ServerShim) Create(ctx context.Context, req *pb.CreateRequest, opts ...grpc.CallOption) (*pb.CreateResponse, error) {
	return s.server.Create(incoming(ctx), req)
}

func (s *ServerShim) Start(ctx context.Context, req *pb.StartRequest, opts ...grpc.CallOption) (*pb.StartResponse, error) {
	return s.server.Start(incoming(ctx), req)
}

func (s *ServerShim) Status(ctx context.Context, req *pb.StatusRequest, opts ...grpc.CallOption) (*pb.StatusResponse, error) {
	return s.server.Status(incoming(ctx), req)
}

func (s *ServerShim) AddGameFrame(ctx context.Context, req *pb.AddGameFrameRequest, opts ...grpc.CallOption) (*pb.AddGameFrameResponse, error) {
	return s.server.AddGameFrame(incoming(ctx), req)
}

func (s *ServerShim) ListGameFrames(ctx context.Context, req *pb.ListGameFramesRequest, opts ...grpc.CallOption) (*pb.ListGameFramesResponse, error) {
	return s.server.ListGameFrames(incoming(ctx), req)
}

func (s *ServerShim) EndGame(ctx context.Context, req *pb.EndGameRequest, opts ...grpc.CallOption) (*pb.EndGameResponse, error) {
	return s.server.EndGame(incoming(ctx), req)
}

func (s *ServerShim) PushInput(ctx context.Context, req *pb.PushInputRequest, opts ...grpc.CallOption) (*pb.PushInputResponse, error) {
	return s.server.PushInput(incoming(ctx), req)
}

func (s *ServerShim) PopInputs(ctx context.Context, req *pb.PopInputsRequest, opts ...grpc.CallOption) (*pb.PopInputsResponse, error) {
	return s.server.PopInputs(incoming(ctx), req)
}

func (s *ServerShim) Ping(ctx context.Context, req *pb.PingRequest, opts ...grpc.CallOption) (*pb.PingResponse, error) {
	return s.server.Ping(incoming(ctx), req)
}
