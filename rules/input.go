package rules

import (
	"github.com/ormenio/engine/controller/pb"
	"github.com/pkg/errors"
)

// ApplyInput applies one player input. When the input changes nothing the
// last frame is returned as is, callers compare pointers to decide whether a
// frame needs to be stored. Quit is left to the caller.
func ApplyInput(game *pb.Game, lastFrame *pb.GameFrame, input *pb.Input) (*pb.GameFrame, error) {
	if input == nil {
		return nil, errors.Wrap(ErrInvalidInput, "nil input")
	}

	switch input.Type {
	case InputMove:
		if lastFrame.Paused || !pb.ValidDirection(input.Direction) {
			return lastFrame, nil
		}
		player := lastFrame.Player
		if input.Direction == player.Direction || input.Direction == pb.Opposite(player.Heading) {
			return lastFrame, nil
		}
		frame := nextFrame(lastFrame)
		frame.Player.Direction = input.Direction
		return frame, nil

	case InputToggle:
		frame := nextFrame(lastFrame)
		if !frame.Paused {
			frame.Paused = true
			return frame, nil
		}
		frame.Paused = false
		if !frame.Started {
			if err := startRound(game, frame); err != nil {
				return nil, err
			}
		}
		return frame, nil

	case InputSettings:
		if lastFrame.Started {
			return lastFrame, nil
		}
		game.StartLevel = ClampLevel(input.StartLevel)
		game.BorderWrap = input.BorderWrap
		return lastFrame, nil

	case InputQuit:
		return lastFrame, nil
	}
	return nil, errors.Wrapf(ErrInvalidInput, "unknown input type %q", input.Type)
}
