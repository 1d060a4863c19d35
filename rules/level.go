package rules

import "github.com/ormenio/engine/controller/pb"

// checkLevelUp runs before the eaten counter is bumped. Every FoodPerLevel
// foods the game speeds up and the obstacles are replaced with longer chains.
// LeveledUp latches so eating back to the same count after losing food does
// not level twice.
func checkLevelUp(game *pb.Game, frame *pb.GameFrame) error {
	if frame.Level >= MaxLevel {
		return nil
	}
	if frame.Eaten < FoodPerLevel || frame.Eaten%FoodPerLevel != 0 {
		frame.LeveledUp = false
		return nil
	}
	if frame.PlayerInterval < MinPlayerInterval || frame.LeveledUp {
		return nil
	}

	frame.PlayerInterval -= IntervalStepPerLevel
	frame.EnemyInterval -= IntervalStepPerLevel
	frame.Level++
	frame.LeveledUp = true
	frame.Obstacles = nil
	return SpawnObstacles(game, frame, ObstacleChains, frame.Level)
}

// startRound applies the start level the first time a round is unpaused.
func startRound(game *pb.Game, frame *pb.GameFrame) error {
	level := ClampLevel(game.StartLevel)
	frame.Level = level
	frame.PlayerInterval = PlayerIntervalStart - IntervalStepPerLevel*level
	frame.EnemyInterval = EnemyIntervalStart - IntervalStepPerLevel*level
	frame.StartScore = (level - 1) * FoodPerLevel
	frame.Started = true
	frame.Obstacles = nil
	return SpawnObstacles(game, frame, ObstacleChains, level)
}
