package controller_test

import (
	"context"
	"testing"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/controller/testsuite"
	"github.com/stretchr/testify/require"
)

func TestInMemStore(t *testing.T) {
	testsuite.Suite(t, controller.InMemStore(), func() {})
}

func TestSliceFrames(t *testing.T) {
	var frames []*pb.GameFrame
	for i := int64(0); i < 5; i++ {
		frames = append(frames, &pb.GameFrame{Turn: i})
	}

	got := controller.SliceFrames(frames, 2, 1)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].Turn)

	got = controller.SliceFrames(frames, 10, 3)
	require.Len(t, got, 2)

	got = controller.SliceFrames(frames, 1, -1)
	require.Len(t, got, 1)
	require.Equal(t, int64(4), got[0].Turn)

	got = controller.SliceFrames(frames, 3, -20)
	require.Len(t, got, 3)
	require.Equal(t, int64(0), got[0].Turn)

	require.Empty(t, controller.SliceFrames(frames, 0, 0))
	require.Empty(t, controller.SliceFrames(nil, 10, 0))

	// returned frames are copies
	got = controller.SliceFrames(frames, 1, 0)
	got[0].Turn = 99
	require.Equal(t, int64(0), frames[0].Turn)
}

func TestInMemStore_InputQueueIsBounded(t *testing.T) {
	s := controller.InMemStore()
	ctx := context.Background()
	require.NoError(t, s.CreateGame(ctx, &pb.Game{ID: "g"}, nil))

	for i := 0; i < controller.MaxQueuedInputs+10; i++ {
		require.NoError(t, s.PushInput(ctx, "g", &pb.Input{Type: "move", StartLevel: int32(i)}))
	}
	inputs, err := s.PopInputs(ctx, "g")
	require.NoError(t, err)
	require.Len(t, inputs, controller.MaxQueuedInputs)
	require.Equal(t, int32(10), inputs[0].StartLevel)
}
