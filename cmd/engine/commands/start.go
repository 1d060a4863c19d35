package commands

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	startCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to start")
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "hands a created game to the workers",
	Args:  requireGameID,
	RunE: func(*cobra.Command, []string) error {
		if err := newAPIClient(apiAddr).start(gameID); err != nil {
			return err
		}
		log.WithField("id", gameID).Info("game started")
		return nil
	},
}

func requireGameID(*cobra.Command, []string) error {
	if len(gameID) == 0 {
		return errors.New("game id is required")
	}
	return nil
}
