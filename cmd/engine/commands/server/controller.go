package server

import (
	"context"
	"io"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/filestore"
	"github.com/ormenio/engine/controller/redis"
	"github.com/ormenio/engine/controller/sqlstore"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	controllerListen      = ":3004"
	controllerBackend     = "inmem"
	controllerBackendArgs = ""
)

func init() {
	controllerCmd.Flags().StringVar(&controllerListen, "controller-listen", controllerListen, "address for the controller to bind to")
	controllerCmd.Flags().StringVarP(&controllerBackend, "backend", "b", controllerBackend, "controller backend, as one of: [inmem, file, redis, sql]")
	controllerCmd.Flags().StringVarP(&controllerBackendArgs, "backend-args", "a", controllerBackendArgs, "options to pass to the backend being used")
	RootCmd.Flags().AddFlagSet(controllerCmd.Flags())
}

var controllerCmd = &cobra.Command{
	Use:    "controller",
	Short:  "runs the engine controller",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		if err := runController(context.Background()); err != nil {
			log.WithError(err).
				WithField("listen", controllerListen).
				Fatal("controller failed to serve")
		}
	},
}

func openStore(backend, args string) (controller.Store, error) {
	switch backend {
	case "inmem":
		return controller.InMemStore(), nil
	case "file":
		return filestore.NewFileStore(args), nil
	case "redis":
		return redis.NewStore(args)
	case "sql":
		return sqlstore.NewSQLStore(args)
	}
	return nil, errors.Errorf("invalid backend %q", backend)
}

func runController(ctx context.Context) error {
	store, err := openStore(controllerBackend, controllerBackendArgs)
	if err != nil {
		return errors.Wrap(err, "unable to start up backend store")
	}
	if c, ok := store.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.WithError(err).Error("unable to close store")
			}
		}()
	}

	ctrl := controller.New(controller.InstrumentStore(store))
	log.WithFields(log.Fields{
		"listen":  controllerListen,
		"backend": controllerBackend,
	}).Info("engine controller serving")

	errs := make(chan error, 1)
	go func() { errs <- ctrl.Serve(controllerListen) }()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		go func() {
			ctrl.Wait()
			ctrl.Stop()
		}()
		return <-errs
	}
}
