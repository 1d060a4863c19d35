// Package filestore keeps games in memory and appends every frame to one
// JSON lines file per game, so finished games can be replayed later.
package filestore

import (
	"context"
	"os/user"
	"path"
	"sync"
	"time"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

func defaultDir() string {
	return path.Join(homeDir(), ".ormen/games")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// NewFileStore returns a file based store implementation (1 file per game).
func NewFileStore(directory string) controller.Store {
	if directory == "" {
		directory = defaultDir()
	}

	return &fileStore{
		games:     map[string]*pb.Game{},
		frames:    map[string][]*pb.GameFrame{},
		inputs:    map[string][]*pb.Input{},
		writers:   map[string]writer{},
		locks:     map[string]*lock{},
		directory: directory,
	}
}

type lock struct {
	token   string
	expires time.Time
}

// gameInfo is the first line of every game file.
type gameInfo struct {
	ID         string `json:"ID"`
	Width      int32  `json:"Width"`
	Height     int32  `json:"Height"`
	StartLevel int32  `json:"StartLevel"`
	BorderWrap bool   `json:"BorderWrap"`
	Created    int64  `json:"Created"`
}

type fileStore struct {
	games     map[string]*pb.Game
	frames    map[string][]*pb.GameFrame
	inputs    map[string][]*pb.Input
	writers   map[string]writer
	locks     map[string]*lock
	lock      sync.Mutex
	directory string
}

// closeGame closes the handle to the game file. Should be called when game is
// complete. The game stays cached so its status can still be read.
func (fs *fileStore) closeGame(id string) {
	if w, ok := fs.writers[id]; ok {
		if err := w.Close(); err != nil {
			log.WithError(err).Error("Error while closing file writer")
		}
	}
	delete(fs.writers, id)
	delete(fs.inputs, id)
}

// Close closes every open game file.
func (fs *fileStore) Close() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	for id := range fs.writers {
		fs.closeGame(id)
	}
	return nil
}

func (fs *fileStore) Lock(ctx context.Context, key, token string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	now := time.Now()

	l, ok := fs.locks[key]
	if ok {
		// We have a lock token, if it's expired just delete it and continue as
		// if nothing happened.
		if l.expires.Before(now) {
			delete(fs.locks, key)
		} else {
			// If the token is not expired and matched our active token, let's
			// just bump the expiration.
			if l.token == token {
				l.expires = time.Now().Add(controller.LockExpiry)
				return l.token, nil
			}
			// If it's not our token, we should throw an error.
			return "", controller.ErrIsLocked
		}
	}
	if token == "" {
		token = uuid.NewV4().String()
	}
	// Lock was expired or non-existant, create a new token.
	l = &lock{
		token:   token,
		expires: now.Add(controller.LockExpiry),
	}
	fs.locks[key] = l
	return l.token, nil
}

func (fs *fileStore) isLocked(key string) bool {
	l, ok := fs.locks[key]
	return ok && l.expires.After(time.Now())
}

func (fs *fileStore) Unlock(ctx context.Context, key, token string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	l, ok := fs.locks[key]
	// No lock? Don't care.
	if !ok {
		return nil
	}
	// We have a lock that matches our token, even if it's expired we are safe
	// to remove it. If it's expired, remove it as well.
	if l.expires.Before(time.Now()) || l.token == token {
		delete(fs.locks, key)
		return nil
	}
	return controller.ErrIsLocked
}

// PopGameID gives the next running game. Since running games should always be
// cached in memory it is not necessary to scan file system.
func (fs *fileStore) PopGameID(ctx context.Context) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	for id, g := range fs.games {
		if !fs.isLocked(id) && g.Status == rules.GameStatusRunning {
			return id, nil
		}
	}
	return "", controller.ErrNotFound
}

func (fs *fileStore) CreateGame(ctx context.Context, g *pb.Game, frames []*pb.GameFrame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	c := *g
	fs.games[g.ID] = &c
	fs.frames[g.ID] = []*pb.GameFrame{}

	handle, err := fs.requireHandle(g.ID, true)
	if err != nil {
		return err
	}
	if err := writeGameInfo(handle, g); err != nil {
		return err
	}
	return fs.appendFrames(g.ID, frames)
}

func (fs *fileStore) SetGameStatus(ctx context.Context, id, status string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	game, err := fs.requireGame(id)
	if err != nil {
		return err
	}

	game.Status = status
	if status != rules.GameStatusRunning {
		fs.closeGame(id)
	}
	return nil
}

func (fs *fileStore) PushGameFrame(ctx context.Context, id string, f *pb.GameFrame) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	return fs.appendFrame(id, f)
}

func (fs *fileStore) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*pb.GameFrame, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return nil, err
	}
	frames, err := fs.requireFrames(id)
	if err != nil {
		return nil, err
	}
	return controller.SliceFrames(frames, limit, offset), nil
}

func (fs *fileStore) GetGame(ctx context.Context, id string) (*pb.Game, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	g, err := fs.requireGame(id)
	if err != nil {
		return nil, err
	}

	// Clone the game, since this could be modified after this is returned
	// and upset internal state inside the store.
	clone := *g
	return &clone, nil
}

func (fs *fileStore) PushInput(ctx context.Context, id string, in *pb.Input) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return err
	}
	c := *in
	queue := append(fs.inputs[id], &c)
	if len(queue) > controller.MaxQueuedInputs {
		queue = queue[len(queue)-controller.MaxQueuedInputs:]
	}
	fs.inputs[id] = queue
	return nil
}

func (fs *fileStore) PopInputs(ctx context.Context, id string) ([]*pb.Input, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, err := fs.requireGame(id); err != nil {
		return nil, err
	}
	inputs := fs.inputs[id]
	delete(fs.inputs, id)
	return inputs, nil
}

func (fs *fileStore) requireHandle(id string, mustBeNew bool) (writer, error) {
	if w, ok := fs.writers[id]; ok {
		return w, nil
	}

	handle, err := openFileWriter(fs.directory, id, mustBeNew)
	if err != nil {
		return nil, err
	}

	fs.writers[id] = handle
	return handle, nil
}

func (fs *fileStore) requireGame(id string) (*pb.Game, error) {
	// Do nothing if game already loaded.
	if g, ok := fs.games[id]; ok {
		return g, nil
	}

	g, err := ReadGameInfo(fs.directory, id)
	if err != nil {
		return nil, err
	}

	fs.games[id] = g
	return g, nil
}

func (fs *fileStore) requireFrames(id string) ([]*pb.GameFrame, error) {
	// Do nothing if frames already loaded.
	if frames, ok := fs.frames[id]; ok {
		return frames, nil
	}

	frames, err := ReadGameFrames(fs.directory, id)
	if err != nil {
		return nil, err
	}

	fs.frames[id] = frames
	return frames, nil
}

func (fs *fileStore) appendFrame(id string, f *pb.GameFrame) error {
	if _, err := fs.requireGame(id); err != nil {
		return err
	}
	if _, err := fs.requireFrames(id); err != nil {
		return err
	}

	handle, err := fs.requireHandle(id, false)
	if err != nil {
		return err
	}

	// Add frame to in-memory cache
	fs.frames[id] = append(fs.frames[id], f.Clone())

	// Add frame to archive file
	return writeFrame(handle, f)
}

func (fs *fileStore) appendFrames(gameID string, frames []*pb.GameFrame) error {
	for _, f := range frames {
		if err := fs.appendFrame(gameID, f); err != nil {
			return err
		}
	}
	return nil
}

func getFilePath(directory string, id string) string {
	return path.Join(directory, id) + ".ormen"
}
