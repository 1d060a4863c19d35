package commands

import (
	"fmt"
	"os"

	"github.com/ormenio/engine/cmd/engine/commands/server"
	"github.com/ormenio/engine/config"
	"github.com/ormenio/engine/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "engine",
	Short:   "engine runs snake sessions and the tools to watch and play them",
	Version: version.Version,
	PersistentPreRun: func(c *cobra.Command, args []string) {
		config.Load()
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(c *cobra.Command, args []string) {
		server.RootCmd.PreRun(c, args)
		server.RootCmd.Run(c, args)
	},
}

var (
	apiAddr = "http://localhost:3005"
	debug   bool
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the api server")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().AddFlagSet(server.RootCmd.Flags())

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(loadTestCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(server.RootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
