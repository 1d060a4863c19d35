package rules

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/ormenio/engine/controller/pb"
	"github.com/stretchr/testify/require"
)

func TestPlayerTick_NilFrame(t *testing.T) {
	_, err := PlayerTick(testGame(), nil)
	require.Error(t, err)
}

func TestPlayerTick_Moves(t *testing.T) {
	g := testGame()
	f := testFrame(t, g)

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.Equal(t, &pb.Point{X: 5, Y: 0}, next.Player.Head())
	require.Equal(t, &pb.Point{X: 1, Y: 0}, next.Player.Tail())
	require.Len(t, next.Player.Body, 5)
	require.Equal(t, f.Turn+1, next.Turn)
	require.Equal(t, &pb.Point{X: 4, Y: 0}, f.Player.Head(), "last frame must not change")
}

func TestPlayerTick_WallCollision(t *testing.T) {
	g := testGame()
	f := testFrame(t, g)
	f.Player.Direction = pb.DirectionUp
	f.Eaten = 3

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.NotNil(t, next.Death, spew.Sdump(next))
	require.Equal(t, DeathCauseWallCollision, next.Death.Cause)
	require.Equal(t, int32(3), next.Death.Score)
	require.Equal(t, f.Turn+1, next.Death.Turn)
	require.Equal(t, int32(2), next.Round)
	require.Equal(t, int32(3), next.HighScore)
	require.Equal(t, &pb.Point{X: 4, Y: 0}, next.Player.Head())
	require.True(t, next.Paused)
	require.False(t, next.Started)
	require.Equal(t, int32(0), next.Eaten)
}

func TestPlayerTick_BorderWrap(t *testing.T) {
	g := testGame()
	g.BorderWrap = true
	f := testFrame(t, g)
	f.Player.Direction = pb.DirectionUp

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.Nil(t, next.Death)
	require.Equal(t, &pb.Point{X: 4, Y: 39}, next.Player.Head())
	require.Equal(t, pb.DirectionUp, next.Player.Heading)
}

func TestPlayerTick_ObstacleCollision(t *testing.T) {
	g := testGame()
	f := testFrame(t, g)
	f.Obstacles = []*pb.Point{{X: 5, Y: 0}}

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.Equal(t, DeathCauseObstacleCollision, next.Death.Cause)
	require.Empty(t, next.Obstacles)
}

func TestPlayerTick_EnemyCollision(t *testing.T) {
	g := testGame()
	f := testFrame(t, g)
	f.Enemy.Body = []*pb.Point{{X: 6, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 1}}

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.Equal(t, DeathCauseEnemyCollision, next.Death.Cause)
}

func TestPlayerTick_SelfCollision(t *testing.T) {
	g := testGame()
	f := testFrame(t, g)
	f.Player.Body = []*pb.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}, {X: 4, Y: 4}}
	f.Player.Heading = pb.DirectionUp
	f.Player.Direction = pb.DirectionLeft

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.Equal(t, DeathCauseSelfCollision, next.Death.Cause)
}

func TestPlayerTick_EatsFood(t *testing.T) {
	g := testGame()
	f := testFrame(t, g)
	f.Food = &pb.Point{X: 5, Y: 0}
	f.FoodAge = 2

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.Nil(t, next.Death)
	require.Equal(t, int32(1), next.Eaten)
	require.Len(t, next.Player.Body, 6)
	require.Equal(t, &pb.Point{X: 0, Y: 0}, next.Player.Tail())
	require.False(t, pb.ContainsPoint(next.Occupied(), next.Food))
	require.Equal(t, int32(0), next.FoodAge)
	require.Equal(t, FoodLifetime(next.Player.Head(), next.Food), next.FoodLifetime)
	require.Equal(t, int32(1), next.Level)
}

func TestGameOver_KeepsHighScore(t *testing.T) {
	g := testGame()
	f := testFrame(t, g)
	f.Eaten = 3
	f.StartScore = 10
	f.HighScore = 5
	f.Turn = 40

	next, err := GameOver(g, f, DeathCauseSelfCollision)
	require.NoError(t, err)
	require.Equal(t, int32(13), next.HighScore)
	require.Equal(t, int32(13), next.Death.Score)
	require.Equal(t, int64(40), next.Turn)

	f.HighScore = 20
	next, err = GameOver(g, f, DeathCauseSelfCollision)
	require.NoError(t, err)
	require.Equal(t, int32(20), next.HighScore)
}
