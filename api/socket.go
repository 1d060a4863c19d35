package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/ormenio/engine/config"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	log "github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

// framesPerPoll bounds a single ListGameFrames call made by a socket.
const framesPerPoll = 100

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// frameEncoder turns a frame into a websocket message.
type frameEncoder func(*pb.GameFrame) (int, []byte, error)

func jsonFrames(f *pb.GameFrame) (int, []byte, error) {
	b, err := json.Marshal(f)
	return websocket.TextMessage, b, err
}

func msgpackFrames(f *pb.GameFrame) (int, []byte, error) {
	b, err := msgpack.Marshal(f)
	return websocket.BinaryMessage, b, err
}

// framesSocket streams every frame of a game, starting with the first one,
// until the game ends. Text messages from the client are queued as inputs.
func framesSocket(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c pb.ControllerClient) {
	id := ps.ByName("id")
	if _, err := c.Status(r.Context(), &pb.StatusRequest{ID: id}); err != nil {
		writeError(w, err)
		return
	}

	encode := frameEncoder(jsonFrames)
	if r.URL.Query().Get("format") == "msgpack" {
		encode = msgpackFrames
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer ws.Close()

	entry := log.WithField("GameID", id)
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		readInputs(ctx, ws, c, id, entry)
	}()

	err = streamFrames(ctx, c, id, func(f *pb.GameFrame) error {
		mt, b, err := encode(f)
		if err != nil {
			return err
		}
		return ws.WriteMessage(mt, b)
	})
	if err != nil && ctx.Err() == nil {
		entry.WithError(err).Warn("frame stream stopped")
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// readInputs queues every input sent by the client until the connection
// closes.
func readInputs(ctx context.Context, ws *websocket.Conn, c pb.ControllerClient, id string, entry *log.Entry) {
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				entry.WithError(err).Debug("socket read failed")
			}
			return
		}

		in := &pb.Input{}
		if err := json.Unmarshal(msg, in); err != nil {
			entry.WithError(err).Warn("dropping malformed input")
			continue
		}
		if _, err := c.PushInput(ctx, &pb.PushInputRequest{ID: id, Input: in}); err != nil {
			entry.WithError(err).Warn("unable to queue input")
		}
	}
}

// streamFrames calls send with every frame of the game in order, polling the
// controller for new ones. It returns once the game has ended and its last
// frame was sent.
func streamFrames(ctx context.Context, c pb.ControllerClient, id string, send func(*pb.GameFrame) error) error {
	t := time.NewTicker(config.FramePollInterval)
	defer t.Stop()

	var offset int32
	for {
		st, err := c.Status(ctx, &pb.StatusRequest{ID: id})
		if err != nil {
			return err
		}
		ended := st.Game.Status == rules.GameStatusComplete || st.Game.Status == rules.GameStatusError

		// Drain what was written before the status was read.
		for {
			resp, err := c.ListGameFrames(ctx, &pb.ListGameFramesRequest{
				ID:     id,
				Offset: offset,
				Limit:  framesPerPoll,
			})
			if err != nil {
				return err
			}
			for _, f := range resp.Frames {
				if err := send(f); err != nil {
					return err
				}
			}
			offset += resp.Count
			if resp.Count < framesPerPoll {
				break
			}
		}
		if ended {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
