package controller

import (
	"context"
	"testing"

	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/ormenio/engine/version"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var client pb.ControllerClient

func init() {
	ctrl := New(InMemStore())
	go func() {
		if err := ctrl.Serve(":0"); err != nil {
			panic(err)
		}
	}()
	var err error
	client, err = pb.Dial(ctrl.DialAddress())
	if err != nil {
		panic(err)
	}
}

func createGame(t *testing.T, ctrl pb.ControllerClient) string {
	resp, err := ctrl.Create(context.Background(), &pb.CreateRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestController_Lock(t *testing.T) {
	ctx := context.Background()
	ctrl := client

	// Lock key (game doesn't need to exist).
	tok, err := ctrl.Lock(ctx, &pb.LockRequest{ID: "test"})
	require.Nil(t, err)

	// Lock again (without token).
	_, err = ctrl.Lock(ctx, &pb.LockRequest{ID: "test"})
	require.NotNil(t, err)
	require.Equal(t, codes.ResourceExhausted, status.Code(err))

	// Lock again (with token).
	ctx = pb.ContextWithLockToken(ctx, tok.Token)
	_, err = ctrl.Lock(ctx, &pb.LockRequest{ID: "test"})
	require.Nil(t, err)

	// Unlock (with token).
	_, err = ctrl.Unlock(ctx, &pb.UnlockRequest{ID: "test"})
	require.Nil(t, err)
}

func TestController_Games(t *testing.T) {
	ctx := context.Background()
	ctrl := client

	id := createGame(t, ctrl)

	st, err := ctrl.Status(ctx, &pb.StatusRequest{ID: id})
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusStopped, st.Game.Status)
	require.NotNil(t, st.LastFrame)
	require.Equal(t, int64(0), st.LastFrame.Turn)

	_, err = ctrl.Start(ctx, &pb.StartRequest{ID: id})
	require.Nil(t, err)

	// Should pop above game.
	g, err := ctrl.Pop(ctx, &pb.PopRequest{})
	require.Nil(t, err)
	require.Equal(t, id, g.ID)

	// Should get above game.
	st, err = ctrl.Status(ctx, &pb.StatusRequest{ID: g.ID})
	require.Nil(t, err)
	require.Equal(t, rules.GameStatusRunning, st.Game.Status)

	_, err = ctrl.EndGame(ctx, &pb.EndGameRequest{ID: id})
	require.NoError(t, err)
}

func TestController_StartOnlyStopped(t *testing.T) {
	ctx := context.Background()
	ctrl := NewInMemory(New(InMemStore()))
	id := createGame(t, ctrl)

	_, err := ctrl.Start(ctx, &pb.StartRequest{ID: id})
	require.NoError(t, err)

	_, err = ctrl.Start(ctx, &pb.StartRequest{ID: id})
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = ctrl.EndGame(ctx, &pb.EndGameRequest{ID: id})
	require.NoError(t, err)

	_, err = ctrl.Start(ctx, &pb.StartRequest{ID: id})
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
	st, err := ctrl.Status(ctx, &pb.StatusRequest{ID: id})
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusComplete, st.Game.Status)

	_, err = ctrl.Start(ctx, &pb.StartRequest{ID: "missing"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestController_StatusNotFound(t *testing.T) {
	_, err := client.Status(context.Background(), &pb.StatusRequest{ID: "missing"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestController_CreateInvalid(t *testing.T) {
	_, err := client.Create(context.Background(), &pb.CreateRequest{Width: 2})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestController_AddGameFrame(t *testing.T) {
	ctx := context.Background()
	ctrl := NewInMemory(New(InMemStore()))
	id := createGame(t, ctrl)

	// Not running yet.
	lock, err := ctrl.Lock(ctx, &pb.LockRequest{ID: id})
	require.NoError(t, err)
	lctx := pb.ContextWithLockToken(ctx, lock.Token)
	_, err = ctrl.AddGameFrame(lctx, &pb.AddGameFrameRequest{ID: id, GameFrame: &pb.GameFrame{Turn: 1}})
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = ctrl.Start(ctx, &pb.StartRequest{ID: id})
	require.NoError(t, err)

	// Someone else holds the lock.
	_, err = ctrl.AddGameFrame(ctx, &pb.AddGameFrameRequest{ID: id, GameFrame: &pb.GameFrame{Turn: 1}})
	require.Equal(t, codes.ResourceExhausted, status.Code(err))

	// Missing frame.
	_, err = ctrl.AddGameFrame(lctx, &pb.AddGameFrameRequest{ID: id})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := ctrl.AddGameFrame(lctx, &pb.AddGameFrameRequest{ID: id, GameFrame: &pb.GameFrame{Turn: 1}})
	require.NoError(t, err)
	require.Equal(t, id, resp.Game.ID)

	frames, err := ctrl.ListGameFrames(ctx, &pb.ListGameFramesRequest{ID: id})
	require.NoError(t, err)
	require.Equal(t, int32(2), frames.Count)
	require.Equal(t, int64(1), frames.Frames[1].Turn)

	frames, err = ctrl.ListGameFrames(ctx, &pb.ListGameFramesRequest{ID: id, Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, frames.Frames, 1)
	require.Equal(t, int64(1), frames.Frames[0].Turn)
}

func TestController_Inputs(t *testing.T) {
	ctx := context.Background()
	ctrl := NewInMemory(New(InMemStore()))
	id := createGame(t, ctrl)

	_, err := ctrl.PushInput(ctx, &pb.PushInputRequest{ID: id})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = ctrl.PushInput(ctx, &pb.PushInputRequest{ID: id, Input: &pb.Input{Type: rules.InputToggle}})
	require.NoError(t, err)
	_, err = ctrl.PushInput(ctx, &pb.PushInputRequest{ID: id, Input: &pb.Input{Type: rules.InputMove, Direction: pb.DirectionUp}})
	require.NoError(t, err)

	lock, err := ctrl.Lock(ctx, &pb.LockRequest{ID: id})
	require.NoError(t, err)

	// Only the lock holder can drain the queue.
	_, err = ctrl.PopInputs(ctx, &pb.PopInputsRequest{ID: id})
	require.Equal(t, codes.ResourceExhausted, status.Code(err))

	resp, err := ctrl.PopInputs(pb.ContextWithLockToken(ctx, lock.Token), &pb.PopInputsRequest{ID: id})
	require.NoError(t, err)
	require.Len(t, resp.Inputs, 2)
	require.Equal(t, rules.InputToggle, resp.Inputs[0].Type)
	require.Equal(t, pb.DirectionUp, resp.Inputs[1].Direction)

	// Ended games take no more input.
	_, err = ctrl.EndGame(pb.ContextWithLockToken(ctx, lock.Token), &pb.EndGameRequest{ID: id})
	require.NoError(t, err)
	_, err = ctrl.PushInput(ctx, &pb.PushInputRequest{ID: id, Input: &pb.Input{Type: rules.InputToggle}})
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestController_EndGameStatus(t *testing.T) {
	ctx := context.Background()
	ctrl := NewInMemory(New(InMemStore()))
	id := createGame(t, ctrl)

	_, err := ctrl.EndGame(ctx, &pb.EndGameRequest{ID: id, Status: rules.GameStatusRunning})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = ctrl.EndGame(ctx, &pb.EndGameRequest{ID: id, Status: rules.GameStatusError})
	require.NoError(t, err)
	st, err := ctrl.Status(ctx, &pb.StatusRequest{ID: id})
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusError, st.Game.Status)
}

func TestController_PopRateLimited(t *testing.T) {
	srv := New(InMemStore())
	ctx := context.Background()
	var limited bool
	for i := 0; i < 1000 && !limited; i++ {
		_, err := srv.Pop(ctx, &pb.PopRequest{})
		limited = status.Code(err) == codes.ResourceExhausted
	}
	require.True(t, limited)
}

func TestController_Ping(t *testing.T) {
	resp, err := client.Ping(context.Background(), &pb.PingRequest{})
	require.NoError(t, err)
	require.Equal(t, version.Version, resp.Version)
}

func TestServer_Stop(t *testing.T) {
	ctrl := New(InMemStore())
	// Stopping before Serve is a no-op.
	ctrl.Stop()

	errs := make(chan error, 1)
	go func() { errs <- ctrl.Serve("127.0.0.1:0") }()
	ctrl.Wait()

	ctrl.Stop()
	require.NoError(t, <-errs)
}
