package rules

import (
	"github.com/ormenio/engine/controller/pb"
)

// candidate order matters, equal distances go to the later direction.
var enemyCandidates = []string{
	pb.DirectionLeft,
	pb.DirectionRight,
	pb.DirectionUp,
	pb.DirectionDown,
}

type enemyMove struct {
	direction string
	next      *pb.Point
	distance  int32
}

// EnemyTick moves the enemy one cell towards the food. When the enemy eats,
// the food moves, the player loses a tail segment and the enemy grows.
func EnemyTick(game *pb.Game, lastFrame *pb.GameFrame) (*pb.GameFrame, error) {
	frame := nextFrame(lastFrame)
	enemy := frame.Enemy
	if enemy.Head() == nil || frame.Food == nil {
		return frame, nil
	}

	move := chooseEnemyMove(game, frame)
	if move == nil {
		return frame, nil
	}
	enemy.MoveTo(move.next, move.direction)
	enemy.Direction = move.direction

	if !enemy.Head().Equal(frame.Food) {
		return frame, nil
	}
	if err := respawnFood(game, frame); err != nil {
		return nil, err
	}
	enemy.Grow()
	if !frame.Player.Shrink() {
		return GameOver(game, frame, DeathCauseStarvation)
	}
	return frame, nil
}

// chooseEnemyMove is a greedy pursuit: the open neighbour closest to the food
// that does not take the enemy further away. Without one the enemy keeps
// going, then takes any open neighbour, and nil means it is boxed in.
func chooseEnemyMove(game *pb.Game, frame *pb.GameFrame) *enemyMove {
	head := frame.Enemy.Head()
	current := Distance(head, frame.Food)
	moves := openEnemyMoves(game, frame)

	var best *enemyMove
	for _, m := range moves {
		if m.distance <= current && (best == nil || m.distance <= best.distance) {
			best = m
		}
	}
	if best != nil {
		return best
	}

	for _, m := range moves {
		if m.direction == frame.Enemy.Heading {
			return m
		}
	}
	for _, m := range moves {
		if best == nil || m.distance < best.distance {
			best = m
		}
	}
	return best
}

func openEnemyMoves(game *pb.Game, frame *pb.GameFrame) []*enemyMove {
	enemy := frame.Enemy
	head := enemy.Head()
	reverse := pb.Opposite(enemy.Heading)

	var moves []*enemyMove
	for _, dir := range enemyCandidates {
		if dir == reverse {
			continue
		}
		next := head.Step(dir)
		switch {
		case !inBounds(game, next):
			continue
		case pb.ContainsPoint(frame.Obstacles, next):
			continue
		case frame.Player.Occupies(next, 0):
			continue
		case enemy.Occupies(next, 1):
			continue
		}
		moves = append(moves, &enemyMove{
			direction: dir,
			next:      next,
			distance:  Distance(next, frame.Food),
		})
	}
	return moves
}
