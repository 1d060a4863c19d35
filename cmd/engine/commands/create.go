package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ormenio/engine/controller/pb"
	"github.com/spf13/cobra"
)

var (
	configFile string
	cr         = &pb.CreateRequest{}
)

func init() {
	createCmd.Flags().StringVarP(&configFile, "config", "c", "", "read the create request from a json file")
	addCreateFlags(createCmd)
}

func addCreateFlags(c *cobra.Command) {
	c.Flags().Int32Var(&cr.Width, "width", 0, "board width, 0 for the default")
	c.Flags().Int32Var(&cr.Height, "height", 0, "board height, 0 for the default")
	c.Flags().Int32Var(&cr.StartLevel, "start-level", 1, "level the first round starts at")
	c.Flags().BoolVar(&cr.BorderWrap, "wrap", false, "snakes wrap around the board edges")
}

// readCreateConfig overrides the create flags with a json file when one was
// given.
func readCreateConfig(*cobra.Command, []string) error {
	if configFile == "" {
		return nil
	}
	data, err := os.ReadFile(configFile) // nolint: gosec
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cr)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "creates a new game on the engine",
	Args:  readCreateConfig,
	RunE: func(*cobra.Command, []string) error {
		resp, err := newAPIClient(apiAddr).create(cr)
		if err != nil {
			return err
		}
		fmt.Printf(`{"ID": "%s"}`+"\n", resp.ID)
		return nil
	},
}
