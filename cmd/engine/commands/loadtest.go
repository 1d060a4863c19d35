package commands

import (
	"math/rand"
	"time"

	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	games           int
	loadDuration    = 10 * time.Second
	updateFrequency = 300 * time.Millisecond
)

func init() {
	loadTestCmd.Flags().StringVarP(&configFile, "config", "c", "", "read the create request from a json file")
	loadTestCmd.Flags().IntVarP(&games, "num-games", "n", 10, "number of games to create and run for the load test")
	loadTestCmd.Flags().DurationVar(&loadDuration, "duration", loadDuration, "how long each game is played")
	addCreateFlags(loadTestCmd)
}

var directions = []string{pb.DirectionUp, pb.DirectionDown, pb.DirectionLeft, pb.DirectionRight}

var loadTestCmd = &cobra.Command{
	Use:   "load-test",
	Short: "run a load test against the engine, playing random moves in many games at once",
	Args:  readCreateConfig,
	RunE: func(*cobra.Command, []string) error {
		c := newAPIClient(apiAddr)
		start := time.Now()
		log.WithField("games", games).Info("Creating games")

		var g errgroup.Group
		results := make([]int64, games)
		for i := 0; i < games; i++ {
			i := i
			g.Go(func() error {
				turns, err := loadGameSession(c, loadDuration)
				results[i] = turns
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var total int64
		for _, t := range results {
			total += t
		}
		log.WithFields(log.Fields{
			"elapsed": time.Since(start),
			"games":   games,
			"turns":   total,
		}).Info("All games complete")
		return nil
	},
}

// loadGameSession creates and plays one game with random moves for d, then
// quits it and waits for the worker to close it out. It returns the last
// turn written.
func loadGameSession(c *apiClient, d time.Duration) (int64, error) {
	resp, err := c.create(cr)
	if err != nil {
		return 0, err
	}
	id := resp.ID
	if err = c.start(id); err != nil {
		return 0, err
	}
	if err = c.input(id, &pb.Input{Type: rules.InputToggle}); err != nil {
		return 0, err
	}

	deadline := time.After(d)
	t := time.NewTicker(updateFrequency)
	defer t.Stop()
	for playing := true; playing; {
		select {
		case <-deadline:
			playing = false
		case <-t.C:
			dir := directions[rand.Intn(len(directions))]
			if err = c.input(id, &pb.Input{Type: rules.InputMove, Direction: dir}); err != nil {
				return 0, err
			}
		}
	}

	if err = c.end(id); err != nil {
		return 0, err
	}
	for {
		sr, err := c.status(id)
		if err != nil {
			return 0, err
		}
		log.WithFields(log.Fields{
			"id":     id,
			"status": sr.Game.Status,
		}).Info("Game Status")
		if sr.Game.Status == rules.GameStatusComplete || sr.Game.Status == rules.GameStatusError {
			if sr.LastFrame == nil {
				return 0, nil
			}
			return sr.LastFrame.Turn, nil
		}
		<-t.C
	}
}
