// Package worker runs game sessions. A worker claims a running game from the
// controller, holds its lock and drives the game clock, writing every new
// frame back through the controller API.
package worker

import (
	"context"
	"time"

	"github.com/ormenio/engine/controller/pb"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	sessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "sessions",
			Help:      "Sessions run by workers, by how they ended.",
		},
		[]string{"result"},
	)
	framesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "frames",
			Help:      "Frames written by workers.",
		},
	)
)

func init() {
	prometheus.MustRegister(sessions, framesWritten)
}

// Worker claims games from the controller and runs them with RunGame.
type Worker struct {
	ControllerClient  pb.ControllerClient
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	RunGame           func(context.Context, pb.ControllerClient, string) error
}

// Run will run the worker in a loop until ctx is done.
func (w *Worker) Run(ctx context.Context, workerID int) {
	for {
		if err := w.run(ctx, workerID); err != nil {
			s, ok := status.FromError(err)
			if !ok || (s.Code() != codes.NotFound && s.Code() != codes.ResourceExhausted) {
				log.WithError(err).WithField("worker", workerID).Warn("run failed")
			}
		}

		select {
		case <-time.After(w.PollInterval):
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) run(ctx context.Context, workerID int) error {
	store := ClientStore(w.ControllerClient)

	// Pop an item of work.
	id, err := store.Pop(ctx)
	if err != nil {
		return err
	}

	// Attempt to get the lock initially.
	token, err := store.Lock(ctx, id)
	if err != nil {
		return err
	}

	entry := log.WithFields(log.Fields{
		"worker": workerID,
		"GameID": id,
	})
	entry.Info("acquired lock")

	// Get a context with the lock token.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctx = pb.ContextWithLockToken(ctx, token)

	defer func() {
		// The run context may already be done, the token is still good.
		uctx, ucancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer ucancel()
		if err := store.Unlock(uctx, id); err != nil {
			entry.WithError(err).Warn("unlock failed")
			return
		}
		entry.Info("unlocked")
	}()

	// Hold the lock, heartbeating every HeartbeatInterval.
	go func() {
		t := time.NewTicker(w.HeartbeatInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if ctx.Err() != nil {
					return
				}
				if _, err := store.Lock(ctx, id); err != nil {
					if ctx.Err() == nil {
						entry.WithError(err).Warn("lock expired during heartbeat")
					}
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Perform the actual work, this should respect context and Done() rules.
	// RunGame writes through the controller using the context, which carries
	// a valid lock for the key.
	err = w.RunGame(ctx, w.ControllerClient, id)
	switch {
	case err == nil:
		sessions.WithLabelValues("complete").Inc()
	case ctx.Err() != nil:
		sessions.WithLabelValues("cancelled").Inc()
	default:
		sessions.WithLabelValues("error").Inc()
	}
	return err
}
