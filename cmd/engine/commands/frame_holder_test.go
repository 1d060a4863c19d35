package commands

import (
	"testing"

	"github.com/ormenio/engine/controller/pb"
	"github.com/stretchr/testify/require"
)

func TestFrameHolder(t *testing.T) {
	fh := &frameHolder{}
	require.Nil(t, fh.last())
	require.Nil(t, fh.get(0))

	fh.append()
	require.Equal(t, 0, fh.count())

	fh.append(&pb.GameFrame{Turn: 0}, &pb.GameFrame{Turn: 1})
	fh.append(&pb.GameFrame{Turn: 2})
	require.Equal(t, 3, fh.count())
	require.Equal(t, int64(2), fh.last().Turn)
	require.Nil(t, fh.get(-1))

	first := <-fh.initialFrame()
	require.Equal(t, int64(0), first.Turn)
}

func TestMoveFrame(t *testing.T) {
	fh := &frameHolder{}
	fh.append(&pb.GameFrame{Turn: 0}, &pb.GameFrame{Turn: 1})

	i, f, done := moveFrameForwards(0, fh)
	require.Equal(t, 1, i)
	require.Equal(t, int64(1), f.Turn)
	require.False(t, done)

	i, f, done = moveFrameForwards(i, fh)
	require.Equal(t, 2, i)
	require.Nil(t, f)
	require.True(t, done)

	i, f = moveFrameBackwards(1, fh)
	require.Equal(t, 0, i)
	require.Equal(t, int64(0), f.Turn)

	i, _ = moveFrameBackwards(0, fh)
	require.Equal(t, 0, i)
}
