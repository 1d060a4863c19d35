// Package redis is a controller.Store backed by a redis server. Games, frames
// and queued inputs live under per game keys, locks are plain keys with a
// millisecond expiry set from a lua script.
package redis

import (
	"context"

	"github.com/go-redis/redis"
	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

const runningKey = "games:running"

func gameKey(id string) string   { return "game:" + id }
func framesKey(id string) string { return "frames:" + id }
func inputsKey(id string) string { return "inputs:" + id }
func lockKey(id string) string   { return "lock:" + id }

// lockScript takes or refreshes a lock. It returns nil when somebody else
// holds it. A non positive expiry drops the key, the lock is granted but
// already expired.
var lockScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if cur and cur ~= ARGV[1] then
	return false
end
local tok = ARGV[1]
if tok == "" then
	tok = ARGV[2]
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], tok, "PX", ARGV[3])
else
	redis.call("DEL", KEYS[1])
end
return tok
`)

var unlockScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if not cur then
	return 1
end
if cur == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// statusScript updates the status field and keeps the running set and the
// input queue in step with it. Returns 0 for a missing game.
var statusScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "status", ARGV[2])
if ARGV[2] == ARGV[3] then
	redis.call("SADD", KEYS[2], ARGV[1])
else
	redis.call("SREM", KEYS[2], ARGV[1])
	redis.call("DEL", KEYS[3])
end
return 1
`)

// pushInputScript appends an input and trims the queue from index ARGV[2],
// a negative count from the end. Returns 0 for a missing game.
var pushInputScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[1])
redis.call("LTRIM", KEYS[2], ARGV[2], -1)
return 1
`)

// Store is a redis backed controller.Store.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it should not be re-created across "threads"
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
// The underlying redis client will be immediately tested for connectivity, so don't call this until you know redis can connect.
// Returns a new instance OR an error if unable (meaning an issue connecting to your redis URL)
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	// Validate it's connected
	err = client.Ping().Err()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Close closes the underlying client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

// Lock will lock a specific game, returning a token that must be used to
// write frames to the game.
func (rs *Store) Lock(ctx context.Context, key, token string) (string, error) {
	ms := controller.LockExpiry.Milliseconds()
	res, err := lockScript.Run(rs.client, []string{lockKey(key)}, token, uuid.NewV4().String(), ms).Result()
	if err == redis.Nil {
		return "", controller.ErrIsLocked
	}
	if err != nil {
		return "", errors.Wrap(err, "unable to lock game")
	}
	tok, ok := res.(string)
	if !ok {
		return "", errors.Errorf("unexpected lock reply %T", res)
	}
	return tok, nil
}

// Unlock will unlock a game if it is locked and the token used to lock it
// is correct.
func (rs *Store) Unlock(ctx context.Context, key, token string) error {
	n, err := unlockScript.Run(rs.client, []string{lockKey(key)}, token).Int64()
	if err != nil {
		return errors.Wrap(err, "unable to unlock game")
	}
	if n == 0 {
		return controller.ErrIsLocked
	}
	return nil
}

// PopGameID returns a new game that is unlocked and running. Workers call
// this method through the controller to find games to process.
func (rs *Store) PopGameID(ctx context.Context) (string, error) {
	ids, err := rs.client.SMembers(runningKey).Result()
	if err != nil {
		return "", errors.Wrap(err, "unable to list running games")
	}
	for _, id := range ids {
		n, err := rs.client.Exists(lockKey(id)).Result()
		if err != nil {
			return "", errors.Wrap(err, "unable to check lock")
		}
		if n == 0 {
			return id, nil
		}
	}
	return "", controller.ErrNotFound
}

// SetGameStatus is used to set a specific game status. This operation
// should be atomic.
func (rs *Store) SetGameStatus(c context.Context, id, status string) error {
	keys := []string{gameKey(id), runningKey, inputsKey(id)}
	n, err := statusScript.Run(rs.client, keys, id, status, rules.GameStatusRunning).Int64()
	if err != nil {
		return errors.Wrap(err, "unable to set game status")
	}
	if n == 0 {
		return controller.ErrNotFound
	}
	return nil
}

// CreateGame will insert a game with the default game frames.
func (rs *Store) CreateGame(c context.Context, g *pb.Game, frames []*pb.GameFrame) error {
	data, err := pb.Marshal(g)
	if err != nil {
		return errors.Wrap(err, "unable to marshal game")
	}
	encoded := make([]interface{}, 0, len(frames))
	for _, f := range frames {
		b, err := pb.Marshal(f)
		if err != nil {
			return errors.Wrap(err, "unable to marshal frame")
		}
		encoded = append(encoded, b)
	}

	_, err = rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.Del(framesKey(g.ID), inputsKey(g.ID))
		pipe.HMSet(gameKey(g.ID), map[string]interface{}{
			"data":   data,
			"status": g.Status,
		})
		if len(encoded) > 0 {
			pipe.RPush(framesKey(g.ID), encoded...)
		}
		if g.Status == rules.GameStatusRunning {
			pipe.SAdd(runningKey, g.ID)
		} else {
			pipe.SRem(runningKey, g.ID)
		}
		return nil
	})
	return errors.Wrap(err, "unable to create game")
}

// PushGameFrame will push a game frame onto the list of frames.
func (rs *Store) PushGameFrame(c context.Context, id string, t *pb.GameFrame) error {
	if err := rs.requireGame(id); err != nil {
		return err
	}
	b, err := pb.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "unable to marshal frame")
	}
	return errors.Wrap(rs.client.RPush(framesKey(id), b).Err(), "unable to push frame")
}

// ListGameFrames will list frames by an offset and limit, it supports
// negative offset.
func (rs *Store) ListGameFrames(c context.Context, id string, limit, offset int) ([]*pb.GameFrame, error) {
	if err := rs.requireGame(id); err != nil {
		return nil, err
	}
	n, err := rs.client.LLen(framesKey(id)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to count frames")
	}
	start, stop, ok := frameRange(int(n), limit, offset)
	if !ok {
		return nil, nil
	}

	raw, err := rs.client.LRange(framesKey(id), int64(start), int64(stop)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to list frames")
	}
	frames := make([]*pb.GameFrame, 0, len(raw))
	for _, r := range raw {
		f := &pb.GameFrame{}
		if err := pb.Unmarshal([]byte(r), f); err != nil {
			return nil, errors.Wrap(err, "unable to unmarshal frame")
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// frameRange turns limit and offset into inclusive list indexes.
func frameRange(n, limit, offset int) (int, int, bool) {
	if offset < 0 {
		offset = n + offset
		if offset < 0 {
			offset = 0
		}
	}
	if n == 0 || offset >= n || limit <= 0 {
		return 0, 0, false
	}
	stop := offset + limit - 1
	if stop >= n {
		stop = n - 1
	}
	return offset, stop, true
}

// GetGame will fetch the game.
func (rs *Store) GetGame(c context.Context, id string) (*pb.Game, error) {
	vals, err := rs.client.HMGet(gameKey(id), "data", "status").Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get game")
	}
	data, ok := vals[0].(string)
	if !ok {
		return nil, controller.ErrNotFound
	}
	g := &pb.Game{}
	if err := pb.Unmarshal([]byte(data), g); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal game")
	}
	if status, ok := vals[1].(string); ok {
		g.Status = status
	}
	return g, nil
}

// PushInput queues a player input for the worker running the game.
func (rs *Store) PushInput(c context.Context, id string, in *pb.Input) error {
	b, err := pb.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "unable to marshal input")
	}
	keys := []string{gameKey(id), inputsKey(id)}
	n, err := pushInputScript.Run(rs.client, keys, b, -controller.MaxQueuedInputs).Int64()
	if err != nil {
		return errors.Wrap(err, "unable to push input")
	}
	if n == 0 {
		return controller.ErrNotFound
	}
	return nil
}

// PopInputs drains the queued inputs, oldest first.
func (rs *Store) PopInputs(c context.Context, id string) ([]*pb.Input, error) {
	if err := rs.requireGame(id); err != nil {
		return nil, err
	}

	var lrange *redis.StringSliceCmd
	_, err := rs.client.TxPipelined(func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(inputsKey(id), 0, -1)
		pipe.Del(inputsKey(id))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to pop inputs")
	}

	var inputs []*pb.Input
	for _, r := range lrange.Val() {
		in := &pb.Input{}
		if err := pb.Unmarshal([]byte(r), in); err != nil {
			return nil, errors.Wrap(err, "unable to unmarshal input")
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (rs *Store) requireGame(id string) error {
	n, err := rs.client.Exists(gameKey(id)).Result()
	if err != nil {
		return errors.Wrap(err, "unable to check game")
	}
	if n == 0 {
		return controller.ErrNotFound
	}
	return nil
}
