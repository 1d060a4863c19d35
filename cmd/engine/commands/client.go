package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/moul/http2curl"
	"github.com/ormenio/engine/controller/pb"
	log "github.com/sirupsen/logrus"
)

// apiClient talks to the engine api over plain HTTP.
type apiClient struct {
	addr   string
	client *http.Client
}

func newAPIClient(addr string) *apiClient {
	return &apiClient{
		addr:   strings.TrimSuffix(addr, "/"),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *apiClient) do(method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.addr+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		if cmd, err := http2curl.GetCurlCommand(req); err == nil {
			log.WithField("curl", cmd.String()).Debug("api request")
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) create(req *pb.CreateRequest) (*pb.CreateResponse, error) {
	resp := &pb.CreateResponse{}
	return resp, c.do(http.MethodPost, "/games", req, resp)
}

func (c *apiClient) start(id string) error {
	return c.do(http.MethodPost, "/games/"+id+"/start", nil, nil)
}

func (c *apiClient) status(id string) (*pb.StatusResponse, error) {
	resp := &pb.StatusResponse{}
	return resp, c.do(http.MethodGet, "/games/"+id, nil, resp)
}

func (c *apiClient) frames(id string, offset, limit int) (*pb.ListGameFramesResponse, error) {
	resp := &pb.ListGameFramesResponse{}
	path := fmt.Sprintf("/games/%s/frames?offset=%d&limit=%d", id, offset, limit)
	return resp, c.do(http.MethodGet, path, nil, resp)
}

func (c *apiClient) input(id string, in *pb.Input) error {
	return c.do(http.MethodPost, "/games/"+id+"/input", in, nil)
}

func (c *apiClient) end(id string) error {
	return c.do(http.MethodPost, "/games/"+id+"/end", nil, nil)
}

// socketURL maps the api address onto its websocket endpoint for id.
func (c *apiClient) socketURL(id string) string {
	u := c.addr
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	default:
		u = "ws://" + u
	}
	return u + "/socket/" + id
}
