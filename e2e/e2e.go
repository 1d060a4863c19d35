// Package e2e drives a whole engine, controller, workers and api, through the
// public HTTP api.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ormenio/engine/controller/pb"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) post(path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}
	resp, err := c.client.Post(c.apiURL+path, "application/json", body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: %s", path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) get(path string, out interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) beginGame(cr *pb.CreateRequest) (string, error) {
	res := &pb.CreateResponse{}
	if err := c.post("/games", cr, res); err != nil {
		return "", err
	}
	if err := c.post(fmt.Sprintf("/games/%s/start", res.ID), nil, nil); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *client) input(gameID string, in *pb.Input) error {
	return c.post(fmt.Sprintf("/games/%s/input", gameID), in, nil)
}

func (c *client) endGame(gameID string) error {
	return c.post(fmt.Sprintf("/games/%s/end", gameID), nil, nil)
}

func (c *client) gameStatus(gameID string) (*pb.StatusResponse, *pb.ListGameFramesResponse, error) {
	st := &pb.StatusResponse{}
	if err := c.get(fmt.Sprintf("/games/%s", gameID), st); err != nil {
		return nil, nil, err
	}
	frames := &pb.ListGameFramesResponse{}
	if err := c.get(fmt.Sprintf("/games/%s/frames?limit=1000", gameID), frames); err != nil {
		return nil, nil, err
	}
	return st, frames, nil
}
