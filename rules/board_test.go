package rules

import (
	"testing"

	"github.com/ormenio/engine/controller/pb"
	"github.com/stretchr/testify/require"
)

func testGame() *pb.Game {
	return &pb.Game{
		ID:     "game_1",
		Status: GameStatusRunning,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

func testFrame(t *testing.T, game *pb.Game) *pb.GameFrame {
	frame, err := NewRound(game, 0, 1)
	require.NoError(t, err)
	frame.Paused = false
	frame.Started = true
	frame.Food = &pb.Point{X: 30, Y: 30}
	return frame
}

func TestDistance(t *testing.T) {
	require.Equal(t, int32(50), Distance(&pb.Point{X: 0, Y: 0}, &pb.Point{X: 3, Y: 4}))
	require.Equal(t, int32(14), Distance(&pb.Point{X: 0, Y: 0}, &pb.Point{X: 1, Y: 1}))
	require.Equal(t, int32(0), Distance(&pb.Point{X: 7, Y: 7}, &pb.Point{X: 7, Y: 7}))
}

func TestFoodLifetime(t *testing.T) {
	require.Equal(t, int32(5), FoodLifetime(&pb.Point{X: 0, Y: 0}, &pb.Point{X: 0, Y: 20}))
	require.Equal(t, int32(0), FoodLifetime(&pb.Point{X: 0, Y: 0}, &pb.Point{X: 0, Y: 1}))
	require.Equal(t, int32(0), FoodLifetime(nil, &pb.Point{X: 0, Y: 1}))
}

func TestClampLevel(t *testing.T) {
	require.Equal(t, int32(1), ClampLevel(0))
	require.Equal(t, int32(1), ClampLevel(-3))
	require.Equal(t, int32(5), ClampLevel(5))
	require.Equal(t, int32(8), ClampLevel(9))
}

func TestWrap(t *testing.T) {
	g := testGame()
	require.Equal(t, &pb.Point{X: 39, Y: 0}, wrap(g, &pb.Point{X: -1, Y: 0}))
	require.Equal(t, &pb.Point{X: 0, Y: 5}, wrap(g, &pb.Point{X: 40, Y: 5}))
	require.Equal(t, &pb.Point{X: 3, Y: 39}, wrap(g, &pb.Point{X: 3, Y: -1}))
	require.Equal(t, &pb.Point{X: 3, Y: 0}, wrap(g, &pb.Point{X: 3, Y: 40}))
}

func TestInterior(t *testing.T) {
	g := testGame()
	require.False(t, interior(g, &pb.Point{X: 0, Y: 5}))
	require.False(t, interior(g, &pb.Point{X: 5, Y: 39}))
	require.True(t, interior(g, &pb.Point{X: 1, Y: 1}))
	require.True(t, interior(g, &pb.Point{X: 38, Y: 38}))
}
