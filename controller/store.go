package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	uuid "github.com/satori/go.uuid"
)

var (
	// LockExpiry is the time after which a lock will expire.
	LockExpiry = 1 * time.Second
	// MaxQueuedInputs caps the inputs waiting for a worker, older inputs are
	// dropped first.
	MaxQueuedInputs = 64
	// ErrNotFound is thrown when a game is not found.
	ErrNotFound = errors.New("controller: game not found")
	// ErrIsLocked is returned when a game is locked.
	ErrIsLocked = errors.New("controller: game is locked")
	// ErrInvalidSequence is returned when a frame is pushed out of order.
	ErrInvalidSequence = errors.New("controller: sequence not valid")
)

// Store is the interface to the backend store.
type Store interface {
	// Lock will lock a specific game, returning a token that must be used to
	// write frames to the game.
	Lock(ctx context.Context, key, token string) (string, error)
	// Unlock will unlock a game if it is locked and the token used to lock it
	// is correct.
	Unlock(ctx context.Context, key, token string) error
	// PopGameID returns a new game that is unlocked and running. Workers call
	// this method through the controller to find games to process.
	PopGameID(context.Context) (string, error)
	// SetGameStatus is used to set a specific game status. This operation
	// should be atomic.
	SetGameStatus(c context.Context, id, status string) error
	// CreateGame will insert a game with the default game frames.
	CreateGame(context.Context, *pb.Game, []*pb.GameFrame) error
	// PushGameFrame will push a game frame onto the list of frames.
	PushGameFrame(c context.Context, id string, t *pb.GameFrame) error
	// ListGameFrames will list frames by an offset and limit, it supports
	// negative offset.
	ListGameFrames(c context.Context, id string, limit, offset int) ([]*pb.GameFrame, error)
	// GetGame will fetch the game.
	GetGame(context.Context, string) (*pb.Game, error)
	// PushInput queues a player input for the worker running the game.
	PushInput(c context.Context, id string, in *pb.Input) error
	// PopInputs drains the queued inputs, oldest first.
	PopInputs(c context.Context, id string) ([]*pb.Input, error)
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		games:  map[string]*pb.Game{},
		frames: map[string][]*pb.GameFrame{},
		inputs: map[string][]*pb.Input{},
		locks:  map[string]*lock{},
	}
}

type lock struct {
	token   string
	expires time.Time
}

type inmem struct {
	games  map[string]*pb.Game
	frames map[string][]*pb.GameFrame
	inputs map[string][]*pb.Input
	locks  map[string]*lock
	lock   sync.Mutex
}

func (in *inmem) Lock(ctx context.Context, key, token string) (string, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	now := time.Now()
	l, ok := in.locks[key]
	if ok {
		if l.expires.Before(now) {
			delete(in.locks, key)
		} else {
			if l.token == token {
				l.expires = now.Add(LockExpiry)
				return l.token, nil
			}
			return "", ErrIsLocked
		}
	}
	if token == "" {
		token = uuid.NewV4().String()
	}
	l = &lock{
		token:   token,
		expires: now.Add(LockExpiry),
	}
	in.locks[key] = l
	return l.token, nil
}

func (in *inmem) isLocked(key string) bool {
	l, ok := in.locks[key]
	return ok && l.expires.After(time.Now())
}

func (in *inmem) Unlock(ctx context.Context, key, token string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	l, ok := in.locks[key]
	if !ok {
		return nil
	}
	if l.expires.Before(time.Now()) || l.token == token {
		delete(in.locks, key)
		return nil
	}
	return ErrIsLocked
}

func (in *inmem) PopGameID(ctx context.Context) (string, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	for id, g := range in.games {
		if !in.isLocked(id) && g.Status == rules.GameStatusRunning {
			return id, nil
		}
	}
	return "", ErrNotFound
}

func (in *inmem) SetGameStatus(ctx context.Context, id, status string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	g, ok := in.games[id]
	if !ok {
		return ErrNotFound
	}
	g.Status = status
	if status != rules.GameStatusRunning {
		delete(in.inputs, id)
	}
	return nil
}

func (in *inmem) CreateGame(ctx context.Context, g *pb.Game, frames []*pb.GameFrame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	in.games[g.ID] = cloneGame(g)
	in.frames[g.ID] = nil
	for _, f := range frames {
		in.frames[g.ID] = append(in.frames[g.ID], f.Clone())
	}
	return nil
}

func (in *inmem) PushGameFrame(ctx context.Context, id string, f *pb.GameFrame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return ErrNotFound
	}
	in.frames[id] = append(in.frames[id], f.Clone())
	return nil
}

func (in *inmem) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*pb.GameFrame, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return nil, ErrNotFound
	}
	return sliceFrames(in.frames[id], limit, offset), nil
}

func (in *inmem) GetGame(ctx context.Context, id string) (*pb.Game, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if g, ok := in.games[id]; ok {
		return cloneGame(g), nil
	}
	return nil, ErrNotFound
}

func (in *inmem) PushInput(ctx context.Context, id string, input *pb.Input) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return ErrNotFound
	}
	c := *input
	queue := append(in.inputs[id], &c)
	if len(queue) > MaxQueuedInputs {
		queue = queue[len(queue)-MaxQueuedInputs:]
	}
	in.inputs[id] = queue
	return nil
}

func (in *inmem) PopInputs(ctx context.Context, id string) ([]*pb.Input, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return nil, ErrNotFound
	}
	inputs := in.inputs[id]
	delete(in.inputs, id)
	return inputs, nil
}

// SliceFrames applies limit and offset semantics shared by all stores to an
// in memory list. A negative offset counts back from the end, -1 being the
// last frame.
func SliceFrames(frames []*pb.GameFrame, limit, offset int) []*pb.GameFrame {
	return sliceFrames(frames, limit, offset)
}

func sliceFrames(frames []*pb.GameFrame, limit, offset int) []*pb.GameFrame {
	if offset < 0 {
		offset = len(frames) + offset
		if offset < 0 {
			offset = 0
		}
	}
	if len(frames) == 0 || offset >= len(frames) || limit <= 0 {
		return nil
	}
	if offset+limit > len(frames) {
		limit = len(frames) - offset
	}
	out := make([]*pb.GameFrame, 0, limit)
	for _, f := range frames[offset : offset+limit] {
		out = append(out, f.Clone())
	}
	return out
}

func cloneGame(g *pb.Game) *pb.Game {
	c := *g
	return &c
}
