package worker

import (
	"context"
	"testing"
	"time"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/ormenio/engine/version"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// server returns a client wired straight to a fresh controller, and the
// store behind it.
func server() (pb.ControllerClient, controller.Store) {
	store := controller.InMemStore()
	return controller.NewInMemory(controller.New(store)), store
}

func startedGame(t *testing.T, client pb.ControllerClient, inputs ...*pb.Input) string {
	ctx := context.Background()
	resp, err := client.Create(ctx, &pb.CreateRequest{})
	require.NoError(t, err)
	_, err = client.Start(ctx, &pb.StartRequest{ID: resp.ID})
	require.NoError(t, err)
	for _, in := range inputs {
		_, err = client.PushInput(ctx, &pb.PushInputRequest{ID: resp.ID, Input: in})
		require.NoError(t, err)
	}
	return resp.ID
}

func TestWorker_RunNoGame(t *testing.T) {
	client, _ := server()
	w := &Worker{
		ControllerClient:  client,
		PollInterval:      200 * time.Millisecond,
		HeartbeatInterval: 200 * time.Millisecond,
		RunGame:           Runner,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := w.run(ctx, 1)
	require.NotNil(t, err)
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestWorker_Run(t *testing.T) {
	client, store := server()
	w := &Worker{
		ControllerClient:  client,
		PollInterval:      1 * time.Millisecond,
		HeartbeatInterval: 10 * time.Millisecond,
		RunGame:           Runner,
	}
	id := startedGame(t, client, &pb.Input{Type: rules.InputToggle})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := w.run(ctx, 1)
	require.Equal(t, context.DeadlineExceeded, err)

	game, err := store.GetGame(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusComplete, game.Status)

	frames, err := store.ListGameFrames(context.Background(), id, 100, 0)
	require.NoError(t, err)
	require.True(t, len(frames) > 2, "expected the clocks to write frames, got %d", len(frames))
}

func TestWorker_RunQuit(t *testing.T) {
	client, store := server()
	w := &Worker{
		ControllerClient:  client,
		PollInterval:      1 * time.Millisecond,
		HeartbeatInterval: 10 * time.Millisecond,
		RunGame:           Runner,
	}
	id := startedGame(t, client,
		&pb.Input{Type: rules.InputToggle},
		&pb.Input{Type: rules.InputQuit},
	)

	err := w.run(context.Background(), 1)
	require.NoError(t, err)

	game, err := store.GetGame(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusComplete, game.Status)
}

func TestWorker_RunLoop(t *testing.T) {
	client, _ := server()
	w := &Worker{
		ControllerClient:  client,
		PollInterval:      1 * time.Millisecond,
		HeartbeatInterval: 1 * time.Millisecond,
		RunGame:           Runner,
	}
	startedGame(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx, 1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop with its context")
	}
}

func TestDial(t *testing.T) {
	ctrl := controller.New(controller.InMemStore())
	go func() {
		if err := ctrl.Serve("127.0.0.1:0"); err != nil {
			panic(err)
		}
	}()

	client, err := Dial(ctrl.DialAddress())
	require.NoError(t, err)

	resp, err := client.Ping(context.Background(), &pb.PingRequest{})
	require.NoError(t, err)
	require.Equal(t, version.Version, resp.Version)
}
