package rules

import (
	"math/rand"

	"github.com/ormenio/engine/controller/pb"
)

// SpawnFood picks a random cell that is not covered by a snake or an obstacle.
func SpawnFood(game *pb.Game, frame *pb.GameFrame) (*pb.Point, error) {
	open := unoccupiedPoints(game, frame.Occupied())
	if len(open) == 0 {
		return nil, ErrNoRoom
	}
	return open[rand.Intn(len(open))], nil
}

func unoccupiedPoints(game *pb.Game, occupied []*pb.Point) []*pb.Point {
	taken := make(map[pb.Point]struct{}, len(occupied))
	for _, p := range occupied {
		taken[*p] = struct{}{}
	}

	candidates := make([]*pb.Point, 0, int(game.Width*game.Height)-len(taken))
	for x := int32(0); x < game.Width; x++ {
		for y := int32(0); y < game.Height; y++ {
			if _, ok := taken[pb.Point{X: x, Y: y}]; !ok {
				candidates = append(candidates, &pb.Point{X: x, Y: y})
			}
		}
	}
	return candidates
}

// FoodTick ages the food by one tick. Food that outlived its lifetime moves,
// costs the player a tail segment and one eaten food.
func FoodTick(game *pb.Game, lastFrame *pb.GameFrame) (*pb.GameFrame, error) {
	frame := nextFrame(lastFrame)
	frame.FoodAge++
	if frame.FoodAge < frame.FoodLifetime {
		return frame, nil
	}

	if err := respawnFood(game, frame); err != nil {
		return nil, err
	}
	if !frame.Player.Shrink() {
		return GameOver(game, frame, DeathCauseStarvation)
	}
	if frame.Eaten > 0 {
		frame.Eaten--
	}
	return frame, nil
}

// respawnFood moves the food and restarts its timer.
func respawnFood(game *pb.Game, frame *pb.GameFrame) error {
	food, err := SpawnFood(game, frame)
	if err != nil {
		return err
	}
	frame.Food = food
	frame.FoodAge = 0
	frame.FoodLifetime = FoodLifetime(frame.Player.Head(), food)
	return nil
}

func nextFrame(lastFrame *pb.GameFrame) *pb.GameFrame {
	frame := lastFrame.Clone()
	frame.Turn++
	frame.Death = nil
	return frame
}
