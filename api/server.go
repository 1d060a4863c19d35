// Package api is the HTTP front door of the engine: it creates and controls
// games through the controller, streams frames over websockets and serves
// the browser board.
package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/ormenio/engine/board"
	"github.com/ormenio/engine/controller/pb"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Server is the HTTP server for the public api.
type Server struct {
	hs *http.Server
}

// New creates a Server listening on addr that talks to the controller
// through c.
func New(addr string, c pb.ControllerClient) *Server {
	router := httprouter.New()
	router.POST("/games", newClientHandle(c, createGame))
	router.GET("/games/:id", newClientHandle(c, gameStatus))
	router.POST("/games/:id/start", newClientHandle(c, startGame))
	router.GET("/games/:id/frames", newClientHandle(c, listFrames))
	router.POST("/games/:id/input", newClientHandle(c, pushInput))
	router.POST("/games/:id/end", newClientHandle(c, endGame))
	router.GET("/socket/:id", newClientHandle(c, framesSocket))
	router.GET("/ping", newClientHandle(c, ping))

	assets := board.Handler()
	router.Handler(http.MethodGet, "/", assets)
	router.Handler(http.MethodGet, "/board.js", assets)

	return &Server{
		hs: &http.Server{
			Addr:    addr,
			Handler: cors.Default().Handler(router),
		},
	}
}

// Handler exposes the routes, used to mount the api in tests.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// WaitForExit starts up the server and blocks until the server shuts down.
func (s *Server) WaitForExit() error {
	log.WithField("addr", s.hs.Addr).Info("api listening")
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for the open ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}
