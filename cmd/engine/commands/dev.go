package commands

import (
	"strings"

	"github.com/ormenio/engine/cmd/engine/commands/server"
	"github.com/ormenio/engine/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var devCmd = &cobra.Command{
	Use:     "dev",
	Short:   "dev runs the server with debug logging and points at the browser board",
	Version: version.Version,
	Run: func(c *cobra.Command, args []string) {
		log.SetLevel(log.DebugLevel)
		log.Infof("board available at %s/", strings.TrimSuffix(apiAddr, "/"))
		server.RootCmd.PreRun(c, args)
		server.RootCmd.Run(c, args)
	},
}

func init() {
	devCmd.Flags().AddFlagSet(server.RootCmd.Flags())
}
