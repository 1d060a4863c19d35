package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	controllerAddr = "127.0.0.1:3004"
	promEnable     = true
	promListen     = ":9000"
)

// RootCmd provides the root run command.
var RootCmd = &cobra.Command{
	Use:    "server",
	Short:  "serve the snake game engine",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		if err := Run(context.Background()); err != nil {
			log.WithError(err).Fatal("engine server failed")
		}
	},
}

func init() {
	RootCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	RootCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")

	RootCmd.AddCommand(apiCmd)
	RootCmd.AddCommand(controllerCmd)
	RootCmd.AddCommand(workerCmd)
}

// Run starts the controller, the api and the workers in one process and
// returns when any of them fails.
func Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runController(ctx) })
	g.Go(func() error { return runAPI(ctx) })
	g.Go(func() error { return runWorkers(ctx) })
	return g.Wait()
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
