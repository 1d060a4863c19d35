package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ormenio/engine/controller/pb"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Create(t *testing.T) {
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(log.InfoLevel)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/games", r.URL.Path)
		req := &pb.CreateRequest{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(req))
		assert.Equal(t, int32(12), req.Width)
		_, _ = w.Write([]byte(`{"ID":"abc"}`))
	}))
	defer srv.Close()

	resp, err := newAPIClient(srv.URL + "/").create(&pb.CreateRequest{Width: 12})
	require.NoError(t, err)
	require.Equal(t, "abc", resp.ID)
}

func TestAPIClient_Frames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/abc/frames", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("offset"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"Frames":[{"Turn":5}],"Count":6}`))
	}))
	defer srv.Close()

	resp, err := newAPIClient(srv.URL).frames("abc", 5, 10)
	require.NoError(t, err)
	require.Len(t, resp.Frames, 1)
	require.Equal(t, int64(5), resp.Frames[0].Turn)
}

func TestAPIClient_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "game not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newAPIClient(srv.URL).status("abc")
	require.EqualError(t, err, "GET /games/abc: 404 Not Found: game not found")

	require.Error(t, newAPIClient(srv.URL).end("abc"))
}

func TestAPIClient_SocketURL(t *testing.T) {
	require.Equal(t, "ws://localhost:3005/socket/abc", newAPIClient("http://localhost:3005").socketURL("abc"))
	require.Equal(t, "wss://example.com/socket/abc", newAPIClient("https://example.com/").socketURL("abc"))
	require.Equal(t, "ws://localhost:3005/socket/abc", newAPIClient("localhost:3005").socketURL("abc"))
}
