package rules

import (
	"math/rand"

	"github.com/ormenio/engine/controller/pb"
)

// maxChainAttempts bounds how many times a single chain is restarted before
// SpawnObstacles gives up.
const maxChainAttempts = 10000

var walkDirections = []string{
	pb.DirectionUp,
	pb.DirectionDown,
	pb.DirectionLeft,
	pb.DirectionRight,
}

// SpawnObstacles adds chains obstacle chains of blocks cells each to the frame.
// Each chain is a random walk; a chain with any bad cell is thrown away and
// walked again from a new random start.
func SpawnObstacles(game *pb.Game, frame *pb.GameFrame, chains, blocks int32) error {
	for c := int32(0); c < chains; c++ {
		chain, err := walkChain(game, frame, blocks)
		if err != nil {
			return err
		}
		frame.Obstacles = append(frame.Obstacles, chain...)
	}
	return nil
}

func walkChain(game *pb.Game, frame *pb.GameFrame, blocks int32) ([]*pb.Point, error) {
	if blocks <= 0 {
		return nil, nil
	}
	for attempt := 0; attempt < maxChainAttempts; attempt++ {
		chain := make([]*pb.Point, 0, blocks)
		prev := &pb.Point{X: rand.Int31n(game.Width), Y: rand.Int31n(game.Height)}
		for int32(len(chain)) < blocks {
			next := prev.Step(walkDirections[rand.Intn(len(walkDirections))])
			if !obstacleFits(game, frame, chain, next) {
				break
			}
			chain = append(chain, next)
			prev = next
		}
		if int32(len(chain)) == blocks {
			return chain, nil
		}
	}
	return nil, ErrNoRoom
}

func obstacleFits(game *pb.Game, frame *pb.GameFrame, chain []*pb.Point, p *pb.Point) bool {
	switch {
	case !interior(game, p):
		return false
	case p.Equal(frame.Food):
		return false
	case frame.Player.Occupies(p, 0), frame.Enemy.Occupies(p, 0):
		return false
	case pb.ContainsPoint(frame.Obstacles, p), pb.ContainsPoint(chain, p):
		return false
	}
	head := frame.Player.Head()
	return head == nil || Distance(p, head) >= ObstacleMinHeadDistance
}
