package worker

import (
	"context"

	"github.com/ormenio/engine/controller/pb"
)

// WorkStore is the slice of the controller a worker needs to claim games:
// discovering runnable games and holding a lock on one. The lock token
// travels in the context.
type WorkStore interface {
	Lock(ctx context.Context, key string) (string, error)
	Unlock(ctx context.Context, key string) error
	Pop(context.Context) (string, error)
}

// ClientStore returns a WorkStore backed by the controller API.
func ClientStore(client pb.ControllerClient) WorkStore {
	return &clientStore{client: client}
}

type clientStore struct {
	client pb.ControllerClient
}

func (c *clientStore) Lock(ctx context.Context, key string) (string, error) {
	res, err := c.client.Lock(ctx, &pb.LockRequest{ID: key})
	if err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *clientStore) Unlock(ctx context.Context, key string) error {
	_, err := c.client.Unlock(ctx, &pb.UnlockRequest{ID: key})
	return err
}

func (c *clientStore) Pop(ctx context.Context) (string, error) {
	res, err := c.client.Pop(ctx, &pb.PopRequest{})
	if err != nil {
		return "", err
	}
	return res.ID, nil
}
