// Package controller provides an API available to workers to write games. It
// also provides the internal API for creating games, queueing player input
// and watching.
package controller

import (
	"context"
	"fmt"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_logrus "github.com/grpc-ecosystem/go-grpc-middleware/logging/logrus"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/ormenio/engine/config"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/ormenio/engine/version"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// New will initialize a new Server.
func New(store Store) *Server {
	return &Server{
		Store:      store,
		popLimiter: rate.NewLimiter(config.PopRate, config.PopBurstRate),
		started:    make(chan struct{}),
	}
}

// Server is a grpc server for pb.ControllerServer.
type Server struct {
	Store Store

	popLimiter *rate.Limiter
	started    chan struct{}
	port       int
	grpc       *grpc.Server
}

// Lock should lock a specific game using the passed in ID. No writes to the
// game should happen as long as the lock is valid. The game being locked does
// not need to exist.
func (s *Server) Lock(ctx context.Context, req *pb.LockRequest) (*pb.LockResponse, error) {
	token := pb.ContextGetLockToken(ctx)
	token, err := s.Store.Lock(ctx, req.ID, token)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.LockResponse{Token: token}, nil
}

// Unlock should unlock a game, if already unlocked a valid lock token must be
// present
func (s *Server) Unlock(ctx context.Context, req *pb.UnlockRequest) (*pb.UnlockResponse, error) {
	token := pb.ContextGetLockToken(ctx)
	if err := s.Store.Unlock(ctx, req.ID, token); err != nil {
		return nil, toStatus(err)
	}
	return &pb.UnlockResponse{}, nil
}

// Pop should pop a game that is unlocked and unfished from the queue. It can
// be subject to race conditions where it is locked immediately after, this is
// expected.
func (s *Server) Pop(ctx context.Context, _ *pb.PopRequest) (*pb.PopResponse, error) {
	if !s.popLimiter.Allow() {
		return nil, status.Error(codes.ResourceExhausted, "controller: pop rate limited")
	}
	id, err := s.Store.PopGameID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.PopResponse{ID: id}, nil
}

// Create creates a new game, but doesn't start running frames.
func (s *Server) Create(ctx context.Context, req *pb.CreateRequest) (*pb.CreateResponse, error) {
	game, frames, err := rules.CreateInitialGame(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Store.CreateGame(ctx, game, frames); err != nil {
		return nil, toStatus(err)
	}
	log.WithFields(log.Fields{
		"GameID": game.ID,
		"Width":  game.Width,
		"Height": game.Height,
	}).Info("game created")
	return &pb.CreateResponse{ID: game.ID}, nil
}

// Start starts a stopped game running, and will make it ready to be picked up
// by a worker.
func (s *Server) Start(ctx context.Context, req *pb.StartRequest) (*pb.StartResponse, error) {
	game, err := s.Store.GetGame(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	// Ended games keep their final status.
	if game.Status != rules.GameStatusStopped {
		return nil, status.Errorf(codes.FailedPrecondition, "controller: cannot start a game with status %q", game.Status)
	}
	if err := s.Store.SetGameStatus(ctx, req.ID, rules.GameStatusRunning); err != nil {
		return nil, toStatus(err)
	}
	return &pb.StartResponse{}, nil
}

// Status retrieves the game state including the last processed game frame.
func (s *Server) Status(ctx context.Context, req *pb.StatusRequest) (*pb.StatusResponse, error) {
	game, err := s.Store.GetGame(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	frames, err := s.Store.ListGameFrames(ctx, req.ID, 1, -1)
	if err != nil {
		return nil, toStatus(err)
	}
	var last *pb.GameFrame
	if len(frames) > 0 {
		last = frames[0]
	}
	return &pb.StatusResponse{
		Game:      game,
		LastFrame: last,
	}, nil
}

// AddGameFrame adds a new game frame to the game. A lock must be held for this
// call to succeed.
func (s *Server) AddGameFrame(ctx context.Context, req *pb.AddGameFrameRequest) (*pb.AddGameFrameResponse, error) {
	if req.GameFrame == nil {
		return nil, status.Error(codes.InvalidArgument, "controller: game frame must not be nil")
	}
	if err := s.requireLock(ctx, req.ID); err != nil {
		return nil, err
	}

	game, err := s.Store.GetGame(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	if game.Status != rules.GameStatusRunning {
		return nil, status.Error(codes.FailedPrecondition, "controller: game must be running to add frames")
	}
	if err := s.Store.PushGameFrame(ctx, req.ID, req.GameFrame); err != nil {
		return nil, toStatus(err)
	}
	return &pb.AddGameFrameResponse{Game: game}, nil
}

// ListGameFrames will list all game frames given a limit and offset.
func (s *Server) ListGameFrames(ctx context.Context, req *pb.ListGameFramesRequest) (*pb.ListGameFramesResponse, error) {
	limit := int(req.Limit)
	if limit <= 0 || limit > config.FrameListLimit {
		limit = config.FrameListLimit
	}
	frames, err := s.Store.ListGameFrames(ctx, req.ID, limit, int(req.Offset))
	if err != nil {
		return nil, toStatus(err)
	}
	if frames == nil {
		frames = []*pb.GameFrame{}
	}
	return &pb.ListGameFramesResponse{
		Frames: frames,
		Count:  int32(len(frames)),
	}, nil
}

// EndGame sets the game status to complete, or to the status given. Workers
// call it holding the lock; without a token the game is ended directly.
func (s *Server) EndGame(ctx context.Context, req *pb.EndGameRequest) (*pb.EndGameResponse, error) {
	if pb.ContextGetLockToken(ctx) != "" {
		if err := s.requireLock(ctx, req.ID); err != nil {
			return nil, err
		}
	}
	st := req.Status
	if st == "" {
		st = rules.GameStatusComplete
	}
	if st != rules.GameStatusComplete && st != rules.GameStatusError {
		return nil, status.Errorf(codes.InvalidArgument, "controller: cannot end a game with status %q", st)
	}
	if err := s.Store.SetGameStatus(ctx, req.ID, st); err != nil {
		return nil, toStatus(err)
	}
	log.WithFields(log.Fields{
		"GameID": req.ID,
		"Status": st,
	}).Info("game ended")
	return &pb.EndGameResponse{}, nil
}

// PushInput queues a player input for the worker running the game.
func (s *Server) PushInput(ctx context.Context, req *pb.PushInputRequest) (*pb.PushInputResponse, error) {
	if req.Input == nil {
		return nil, status.Error(codes.InvalidArgument, "controller: input must not be nil")
	}
	game, err := s.Store.GetGame(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	if game.Status == rules.GameStatusComplete || game.Status == rules.GameStatusError {
		return nil, status.Error(codes.FailedPrecondition, "controller: game has ended")
	}
	if err := s.Store.PushInput(ctx, req.ID, req.Input); err != nil {
		return nil, toStatus(err)
	}
	return &pb.PushInputResponse{}, nil
}

// PopInputs drains the queued inputs of a game. A lock must be held for this
// call to succeed.
func (s *Server) PopInputs(ctx context.Context, req *pb.PopInputsRequest) (*pb.PopInputsResponse, error) {
	if err := s.requireLock(ctx, req.ID); err != nil {
		return nil, err
	}
	inputs, err := s.Store.PopInputs(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.PopInputsResponse{Inputs: inputs}, nil
}

// Ping reports the controller version.
func (s *Server) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Version: version.Version}, nil
}

// requireLock re-locks the game with the token from the context, this fails
// when someone else holds the lock.
func (s *Server) requireLock(ctx context.Context, id string) error {
	token := pb.ContextGetLockToken(ctx)
	if _, err := s.Store.Lock(ctx, id, token); err != nil {
		return toStatus(err)
	}
	return nil
}

// Serve will intantiate a grpc server.
func (s *Server) Serve(listen string) error {
	lis, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}
	s.port = lis.Addr().(*net.TCPAddr).Port

	entry := log.WithField("component", "controller")
	srv := grpc.NewServer(
		grpc_middleware.WithUnaryServerChain(
			grpc_recovery.UnaryServerInterceptor(),
			grpc_prometheus.UnaryServerInterceptor,
			grpc_logrus.UnaryServerInterceptor(entry, grpc_logrus.WithLevels(logLevel)),
		),
	)
	pb.RegisterControllerServer(srv, s)
	grpc_prometheus.Register(srv)
	s.grpc = srv
	close(s.started)
	if err := srv.Serve(lis); err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// DialAddress will return a localhost address to reach the server. This is
// useful if the server will select it's own port.
func (s *Server) DialAddress() string {
	<-s.started
	return fmt.Sprintf("127.0.0.1:%d", s.port)
}

// Wait will wait until the server has started.
func (s *Server) Wait() { <-s.started }

// Stop drains in-flight calls and stops a started server. Serve returns nil
// once it has.
func (s *Server) Stop() {
	select {
	case <-s.started:
		s.grpc.GracefulStop()
	default:
	}
}

// logLevel keeps the per call log quiet, workers poll constantly.
func logLevel(code codes.Code) log.Level {
	switch code {
	case codes.OK, codes.NotFound, codes.ResourceExhausted:
		return log.DebugLevel
	case codes.Internal, codes.Unknown:
		return log.ErrorLevel
	}
	return log.WarnLevel
}

func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch errors.Cause(err) {
	case ErrNotFound:
		return status.Error(codes.NotFound, err.Error())
	case ErrIsLocked:
		return status.Error(codes.ResourceExhausted, err.Error())
	case ErrInvalidSequence:
		return status.Error(codes.FailedPrecondition, err.Error())
	case rules.ErrInvalidInput:
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
