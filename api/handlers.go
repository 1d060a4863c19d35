package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type clientHandle func(http.ResponseWriter, *http.Request, httprouter.Params, pb.ControllerClient)

func newClientHandle(c pb.ControllerClient, handle clientHandle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		handle(w, r, ps, c)
	}
}

func createGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params, c pb.ControllerClient) {
	req := &pb.CreateRequest{}
	if !readJSON(w, r, req) {
		return
	}
	resp, err := c.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func startGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c pb.ControllerClient) {
	resp, err := c.Start(r.Context(), &pb.StartRequest{ID: ps.ByName("id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func gameStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c pb.ControllerClient) {
	resp, err := c.Status(r.Context(), &pb.StatusRequest{ID: ps.ByName("id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func listFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c pb.ControllerClient) {
	q := r.URL.Query()
	offset, err := queryInt(q.Get("offset"))
	if err != nil {
		http.Error(w, "invalid offset", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}

	resp, err := c.ListGameFrames(r.Context(), &pb.ListGameFramesRequest{
		ID:     ps.ByName("id"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func pushInput(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c pb.ControllerClient) {
	in := &pb.Input{}
	if !readJSON(w, r, in) {
		return
	}
	resp, err := c.PushInput(r.Context(), &pb.PushInputRequest{ID: ps.ByName("id"), Input: in})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

// endGame asks the worker running the game to quit so the last frame is
// written first. Games nobody is running are ended directly.
func endGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params, c pb.ControllerClient) {
	id := ps.ByName("id")
	st, err := c.Status(r.Context(), &pb.StatusRequest{ID: id})
	if err != nil {
		writeError(w, err)
		return
	}

	if st.Game.Status == rules.GameStatusRunning {
		_, err = c.PushInput(r.Context(), &pb.PushInputRequest{
			ID:    id,
			Input: &pb.Input{Type: rules.InputQuit},
		})
	} else {
		_, err = c.EndGame(r.Context(), &pb.EndGameRequest{ID: id})
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, &pb.EndGameResponse{})
}

func ping(w http.ResponseWriter, r *http.Request, _ httprouter.Params, c pb.ControllerClient) {
	resp, err := c.Ping(r.Context(), &pb.PingRequest{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func queryInt(s string) (int32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}

// httpCodes maps controller errors onto http status codes.
var httpCodes = map[codes.Code]int{
	codes.NotFound:           http.StatusNotFound,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.FailedPrecondition: http.StatusConflict,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.Unavailable:        http.StatusServiceUnavailable,
}

func writeError(w http.ResponseWriter, err error) {
	s := status.Convert(err)
	code, ok := httpCodes[s.Code()]
	if !ok {
		code = http.StatusInternalServerError
		log.WithError(err).Error("controller call failed")
	}
	http.Error(w, s.Message(), code)
}
