package server

import (
	"context"
	"time"

	"github.com/ormenio/engine/api"
	"github.com/ormenio/engine/controller/pb"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiListen = ":3005"
)

func init() {
	apiCmd.Flags().StringVar(&apiListen, "api-listen", apiListen, "api address to listen on")
	apiCmd.Flags().StringVarP(&controllerAddr, "controller-addr", "c", controllerAddr, "address of the controller")
	RootCmd.Flags().AddFlagSet(apiCmd.Flags())
}

var apiCmd = &cobra.Command{
	Use:    "api",
	Short:  "runs the engine api",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		if err := runAPI(context.Background()); err != nil {
			log.WithError(err).
				WithField("listen", apiListen).
				Fatal("api server failed")
		}
	},
}

func runAPI(ctx context.Context) error {
	client, err := pb.Dial(controllerAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to dial controller at %s", controllerAddr)
	}

	srv := api.New(apiListen, client)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.WithError(err).Warn("api shutdown")
		}
	}()

	log.WithField("listen", apiListen).Info("engine api serving")
	return srv.WaitForExit()
}
