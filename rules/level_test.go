package rules

import (
	"testing"

	"github.com/ormenio/engine/controller/pb"
	"github.com/stretchr/testify/require"
)

func levelFrame(t *testing.T, g *pb.Game) *pb.GameFrame {
	f := testFrame(t, g)
	f.PlayerInterval = PlayerIntervalStart - IntervalStepPerLevel
	f.EnemyInterval = EnemyIntervalStart - IntervalStepPerLevel
	return f
}

func TestCheckLevelUp(t *testing.T) {
	g := testGame()
	f := levelFrame(t, g)
	f.Eaten = 5

	require.NoError(t, checkLevelUp(g, f))
	require.Equal(t, int32(2), f.Level)
	require.Equal(t, int32(110), f.PlayerInterval)
	require.Equal(t, int32(190), f.EnemyInterval)
	require.True(t, f.LeveledUp)
	require.Len(t, f.Obstacles, ObstacleChains*2)
}

func TestCheckLevelUp_Latched(t *testing.T) {
	g := testGame()
	f := levelFrame(t, g)
	f.Eaten = 5
	f.LeveledUp = true

	require.NoError(t, checkLevelUp(g, f))
	require.Equal(t, int32(1), f.Level)
	require.True(t, f.LeveledUp)
}

func TestCheckLevelUp_LatchClears(t *testing.T) {
	g := testGame()
	f := levelFrame(t, g)
	f.Eaten = 6
	f.LeveledUp = true

	require.NoError(t, checkLevelUp(g, f))
	require.Equal(t, int32(1), f.Level)
	require.False(t, f.LeveledUp)
}

func TestCheckLevelUp_MaxLevel(t *testing.T) {
	g := testGame()
	f := levelFrame(t, g)
	f.Level = MaxLevel
	f.Eaten = 40

	require.NoError(t, checkLevelUp(g, f))
	require.Equal(t, int32(MaxLevel), f.Level)
	require.Empty(t, f.Obstacles)
}

func TestCheckLevelUp_NoFoodYet(t *testing.T) {
	g := testGame()
	f := levelFrame(t, g)

	require.NoError(t, checkLevelUp(g, f))
	require.Equal(t, int32(1), f.Level)
}

func TestPlayerTick_LevelsUp(t *testing.T) {
	g := testGame()
	f := levelFrame(t, g)
	f.Eaten = 5
	f.Food = &pb.Point{X: 5, Y: 0}

	next, err := PlayerTick(g, f)
	require.NoError(t, err)
	require.Equal(t, int32(2), next.Level)
	require.Equal(t, int32(6), next.Eaten)
	require.Len(t, next.Obstacles, ObstacleChains*2)
	require.False(t, pb.ContainsPoint(next.Obstacles, next.Food))
}

func TestStartRound(t *testing.T) {
	g := testGame()
	g.StartLevel = 3
	f, err := NewRound(g, 0, 1)
	require.NoError(t, err)

	require.NoError(t, startRound(g, f))
	require.Equal(t, int32(3), f.Level)
	require.Equal(t, int32(105), f.PlayerInterval)
	require.Equal(t, int32(185), f.EnemyInterval)
	require.Equal(t, int32(10), f.StartScore)
	require.Equal(t, int32(10), f.Score())
	require.True(t, f.Started)
	require.Len(t, f.Obstacles, ObstacleChains*3)
}

func TestPlayerTick_LevelUpObstaclesMissGrownTail(t *testing.T) {
	g := testGame()
	g.Width, g.Height = MinWidth, MinHeight

	for i := 0; i < 200; i++ {
		f := levelFrame(t, g)
		f.Eaten = 5
		f.Player.Body = []*pb.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}, {X: 7, Y: 10}}
		f.Food = &pb.Point{X: 11, Y: 10}

		next, err := PlayerTick(g, f)
		require.NoError(t, err)
		require.Equal(t, int32(2), next.Level)
		require.Len(t, next.Player.Body, 5)
		for _, o := range next.Obstacles {
			require.False(t, pb.ContainsPoint(next.Player.Body, o), "obstacle on player at %v", o)
		}
	}
}
