package controller

import (
	"context"

	"github.com/ormenio/engine/controller/pb"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore times every store call and counts the ones that fail.
// Missing games and held locks are part of normal polling and are not
// counted as failures.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "engine",
			Subsystem: "store",
			Name:      "calls",
			Help:      "Calls processed by the store.",
		},
		[]string{"method"},
	)
	storeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "store",
			Name:      "errors",
			Help:      "Store calls that failed.",
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(storeCalls, storeErrors)
}

func observe(method string) func(*error) {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func(err *error) {
		t.ObserveDuration()
		switch errors.Cause(*err) {
		case nil, ErrNotFound, ErrIsLocked:
		default:
			storeErrors.WithLabelValues(method).Inc()
		}
	}
}

type metrics struct{ s Store }

func (m *metrics) Lock(ctx context.Context, key, token string) (tok string, err error) {
	defer observe("Lock")(&err)
	return m.s.Lock(ctx, key, token)
}

func (m *metrics) Unlock(ctx context.Context, key, token string) (err error) {
	defer observe("Unlock")(&err)
	return m.s.Unlock(ctx, key, token)
}

func (m *metrics) PopGameID(ctx context.Context) (id string, err error) {
	defer observe("PopGameID")(&err)
	return m.s.PopGameID(ctx)
}

func (m *metrics) SetGameStatus(ctx context.Context, id, status string) (err error) {
	defer observe("SetGameStatus")(&err)
	return m.s.SetGameStatus(ctx, id, status)
}

func (m *metrics) CreateGame(ctx context.Context, g *pb.Game, frames []*pb.GameFrame) (err error) {
	defer observe("CreateGame")(&err)
	return m.s.CreateGame(ctx, g, frames)
}

func (m *metrics) PushGameFrame(ctx context.Context, id string, f *pb.GameFrame) (err error) {
	defer observe("PushGameFrame")(&err)
	return m.s.PushGameFrame(ctx, id, f)
}

func (m *metrics) ListGameFrames(ctx context.Context, id string, limit, offset int) (frames []*pb.GameFrame, err error) {
	defer observe("ListGameFrames")(&err)
	return m.s.ListGameFrames(ctx, id, limit, offset)
}

func (m *metrics) GetGame(ctx context.Context, id string) (g *pb.Game, err error) {
	defer observe("GetGame")(&err)
	return m.s.GetGame(ctx, id)
}

func (m *metrics) PushInput(ctx context.Context, id string, in *pb.Input) (err error) {
	defer observe("PushInput")(&err)
	return m.s.PushInput(ctx, id, in)
}

func (m *metrics) PopInputs(ctx context.Context, id string) (inputs []*pb.Input, err error) {
	defer observe("PopInputs")(&err)
	return m.s.PopInputs(ctx, id)
}

// Close closes the wrapped store when it holds resources.
func (m *metrics) Close() error {
	if c, ok := m.s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
