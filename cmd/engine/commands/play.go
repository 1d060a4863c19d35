package commands

import (
	"time"

	termbox "github.com/nsf/termbox-go"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const playRefresh = 20 * time.Millisecond

func init() {
	playCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "join an existing game instead of creating one")
	addCreateFlags(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays a game in the terminal",
	RunE: func(*cobra.Command, []string) error {
		c := newAPIClient(apiAddr)
		if gameID == "" {
			resp, err := c.create(cr)
			if err != nil {
				return errors.Wrap(err, "create game")
			}
			gameID = resp.ID
			if err := c.start(gameID); err != nil {
				return errors.Wrap(err, "start game")
			}
			log.WithField("id", gameID).Info("game created")
		}
		return playGame(c, gameID)
	},
}

// keyInput maps a key press onto the input it sends. Settings go out ahead
// of the toggle that starts the first round.
func keyInput(ev termbox.Event) []*pb.Input {
	if ev.Type != termbox.EventKey {
		return nil
	}
	switch ev.Key {
	case termbox.KeyArrowUp:
		return []*pb.Input{{Type: rules.InputMove, Direction: pb.DirectionUp}}
	case termbox.KeyArrowDown:
		return []*pb.Input{{Type: rules.InputMove, Direction: pb.DirectionDown}}
	case termbox.KeyArrowLeft:
		return []*pb.Input{{Type: rules.InputMove, Direction: pb.DirectionLeft}}
	case termbox.KeyArrowRight:
		return []*pb.Input{{Type: rules.InputMove, Direction: pb.DirectionRight}}
	case termbox.KeySpace:
		return []*pb.Input{
			{Type: rules.InputSettings, StartLevel: cr.StartLevel, BorderWrap: cr.BorderWrap},
			{Type: rules.InputToggle},
		}
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return []*pb.Input{{Type: rules.InputQuit}}
	}
	if ev.Ch == 'q' {
		return []*pb.Input{{Type: rules.InputQuit}}
	}
	return nil
}

func playGame(c *apiClient, id string) error {
	s, err := c.status(id)
	if err != nil {
		return errors.Wrap(err, "get status")
	}
	frames := &frameHolder{}
	conn, done, err := dialFrames(c, id, frames)
	if err != nil {
		return errors.Wrap(err, "dial frames")
	}

	if err = termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	eventQueue := setupEventQueue()
	refresh := time.NewTicker(playRefresh)
	defer refresh.Stop()
	var shown *pb.GameFrame

	for {
		select {
		case ev := <-eventQueue:
			for _, in := range keyInput(ev) {
				if err := conn.WriteJSON(in); err != nil {
					return errors.Wrap(err, "send input")
				}
			}
		case <-refresh.C:
			f := frames.last()
			if f == nil || f == shown {
				continue
			}
			shown = f
			if err := render(s.Game, f); err != nil {
				return err
			}
		case <-done:
			return nil
		}
	}
}
