package rules

import (
	"fmt"

	"github.com/ormenio/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// PlayerTick moves the player one cell in its requested direction and
// resolves what it ran into.
func PlayerTick(game *pb.Game, lastFrame *pb.GameFrame) (*pb.GameFrame, error) {
	if lastFrame == nil {
		return nil, fmt.Errorf("rules: invalid state, previous frame is nil")
	}
	frame := nextFrame(lastFrame)
	player := frame.Player
	tail := player.Tail().Clone()
	player.Move(player.Direction)
	head := player.Head()

	if pb.ContainsPoint(frame.Obstacles, head) {
		return GameOver(game, frame, DeathCauseObstacleCollision)
	}
	if !inBounds(game, head) {
		if !game.BorderWrap {
			return GameOver(game, frame, DeathCauseWallCollision)
		}
		player.Body[0] = wrap(game, head)
		head = player.Body[0]
	}
	if frame.Enemy.Occupies(head, 0) {
		return GameOver(game, frame, DeathCauseEnemyCollision)
	}
	if player.Occupies(head, 1) {
		return GameOver(game, frame, DeathCauseSelfCollision)
	}

	if head.Equal(frame.Food) {
		// Grow before a level-up spawns obstacles so the tail cell is taken.
		if tail != nil {
			player.Body = append(player.Body, tail)
		}
		if err := checkLevelUp(game, frame); err != nil {
			return nil, err
		}
		frame.Eaten++
		if err := respawnFood(game, frame); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"GameID": game.ID,
			"Turn":   frame.Turn,
			"Eaten":  frame.Eaten,
			"Level":  frame.Level,
		}).Debug("player ate")
	}
	return frame, nil
}

// GameOver ends the round described by frame and returns the first frame of
// the next one. The high score survives, everything else resets.
func GameOver(game *pb.Game, frame *pb.GameFrame, cause string) (*pb.GameFrame, error) {
	score := frame.Score()
	highScore := frame.HighScore
	if score > highScore {
		highScore = score
	}

	log.WithFields(log.Fields{
		"GameID": game.ID,
		"Turn":   frame.Turn,
		"Round":  frame.Round,
		"Cause":  cause,
		"Score":  score,
	}).Info("round over")

	next, err := NewRound(game, highScore, frame.Round+1)
	if err != nil {
		return nil, err
	}
	next.Turn = frame.Turn
	next.Death = &pb.Death{
		Cause: cause,
		Turn:  frame.Turn,
		Score: score,
	}
	return next, nil
}
