package commands

import (
	"time"

	termbox "github.com/nsf/termbox-go"
	"github.com/ormenio/engine/controller/filestore"
	"github.com/ormenio/engine/controller/pb"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	replayDir   string
	replaySpeed = 100 * time.Millisecond
)

func init() {
	replayCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to replay")
	replayCmd.Flags().StringVarP(&replayDir, "dir", "d", "", "read the game from a file backend directory instead of the api")
	replayCmd.Flags().DurationVar(&replaySpeed, "speed", replaySpeed, "time between frames")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replays an existing game in the terminal",
	Args:  requireGameID,
	RunE: func(*cobra.Command, []string) error {
		game, frames, err := loadGame()
		if err != nil {
			return err
		}
		return replayGame(game, frames)
	},
}

func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *pb.GameFrame, bool) {
	frameIndex++
	if frameIndex >= frames.count() {
		return frames.count(), nil, true
	}
	return frameIndex, frames.get(frameIndex), false
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *pb.GameFrame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

// loadGame reads a finished archive from disk when --dir is set, otherwise it
// streams the frames from the api.
func loadGame() (*pb.Game, *frameHolder, error) {
	frames := &frameHolder{}
	if replayDir != "" {
		game, err := filestore.ReadGameInfo(replayDir, gameID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "read game info")
		}
		list, err := filestore.ReadGameFrames(replayDir, gameID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "read game frames")
		}
		frames.append(list...)
		return game, frames, nil
	}

	c := newAPIClient(apiAddr)
	s, err := c.status(gameID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "get status")
	}
	if _, _, err := dialFrames(c, gameID, frames); err != nil {
		return nil, nil, errors.Wrap(err, "dial frames")
	}
	return s.Game, frames, nil
}

func replayGame(game *pb.Game, frames *frameHolder) error {
	currentFrame, err := getInitialFrame(frames)
	if err != nil {
		return err
	}

	if err = termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	eventQueue := setupEventQueue()
	cycle := time.NewTicker(replaySpeed)
	defer cycle.Stop()
	frameIndex := 0
	paused := false
	done := false

	for !done {
		select {
		case ev := <-eventQueue:
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeyEsc, termbox.KeyCtrlC:
				return nil
			case termbox.KeySpace:
				paused = !paused
			case termbox.KeyArrowLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
				if err = render(game, currentFrame); err != nil {
					return err
				}
			case termbox.KeyArrowRight:
				paused = true
				frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
				if !done {
					if err = render(game, currentFrame); err != nil {
						return err
					}
				}
			}
		case <-cycle.C:
			if paused {
				continue
			}
			if err = render(game, currentFrame); err != nil {
				return err
			}
			frameIndex, currentFrame, done = moveFrameForwards(frameIndex, frames)
		}
	}

	tbprint(0, 0, defaultColor, defaultColor, "Press any key to exit...")
	if err = termbox.Flush(); err != nil {
		return err
	}
	<-eventQueue
	return nil
}

func getInitialFrame(frames *frameHolder) (*pb.GameFrame, error) {
	select {
	case f := <-frames.initialFrame():
		return f, nil
	case <-time.After(2 * time.Second):
		return nil, errors.New("unable to find initial frame for game")
	}
}
