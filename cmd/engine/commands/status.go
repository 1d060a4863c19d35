package commands

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a game from the engine",
	Args:  requireGameID,
	RunE: func(*cobra.Command, []string) error {
		sr, err := newAPIClient(apiAddr).status(gameID)
		if err != nil {
			return err
		}
		spew.Dump(sr)
		return nil
	},
}

var (
	gameID string
)

func init() {
	statusCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to get the status of")
}
