package commands

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	"github.com/ormenio/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// dialFrames connects to the frame socket for id and appends every frame it
// receives to frames. The returned connection is also used to send inputs.
// done is closed once the server closes the stream, the connection is closed
// with it.
func dialFrames(c *apiClient, id string, frames *frameHolder) (*websocket.Conn, <-chan struct{}, error) {
	u := c.socketURL(id)
	log.WithField("url", u).Debug("connecting to frame socket")

	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, nil, err
	}

	done := make(chan struct{})
	go func() {
		defer func() {
			_ = conn.Close()
			close(done)
		}()
		for {
			mt, message, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("frame socket read")
				}
				return
			}
			if mt != websocket.TextMessage {
				log.WithField("type", mt).Debug("unhandled message type")
				continue
			}
			frame := &pb.GameFrame{}
			if err := json.Unmarshal(message, frame); err != nil {
				log.WithError(err).Warn("unmarshal frame")
				return
			}
			frames.append(frame)
		}
	}()
	return conn, done, nil
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
