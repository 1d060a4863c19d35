// Package testsuite holds the behaviour every controller.Store backend must
// share. Backends run it from their own tests.
package testsuite

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func testStoreLock(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()

	ctx := context.Background()

	// Lock random key.
	tok, err := s.Lock(ctx, key, "")
	require.Nil(t, err)
	require.NotEmpty(t, tok)

	// Lock again without the token.
	_, err = s.Lock(ctx, key, "")
	require.Equal(t, controller.ErrIsLocked, errors.Cause(err))

	// Lock with valid token, no error same token returned.
	tok2, err := s.Lock(ctx, key, tok)
	require.Nil(t, err)
	require.Equal(t, tok, tok2)

	// Unlock without valid token returns error.
	err = s.Unlock(ctx, key, "")
	require.Error(t, err)

	// Unlock with valid token no error.
	err = s.Unlock(ctx, key, tok)
	require.Nil(t, err)

	// Unlock where lock doesn't exist returns no error.
	err = s.Unlock(ctx, key+"-missing", "")
	require.Nil(t, err)
}

func testStoreLockExpiry(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Negative expiry, will always be expired.
	controller.LockExpiry = -10 * time.Second
	defer func() { controller.LockExpiry = 1 * time.Second }()

	// Lock random key.
	tok, err := s.Lock(ctx, key, "")
	require.Nil(t, err)
	require.NotEmpty(t, tok)

	// Lock (with token) has expired.
	tok2, err := s.Lock(ctx, key, tok)
	require.Nil(t, err)
	require.Equal(t, tok, tok2)

	// Unlock (no token) has expired.
	err = s.Unlock(ctx, key, "")
	require.NoError(t, err)

	// Lock (no token) has expired.
	_, err = s.Lock(ctx, key, "")
	require.Nil(t, err)

	// Unlock (no token) has expired.
	err = s.Unlock(ctx, key, "")
	require.Nil(t, err)
}

func testStoreGameStatus(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Create a stopped game, it cannot be popped.
	err := s.CreateGame(ctx, &pb.Game{ID: key, Status: rules.GameStatusStopped}, nil)
	require.Nil(t, err)
	id, err := s.PopGameID(ctx)
	if err == nil {
		require.NotEqual(t, key, id)
	}

	// Set game to running.
	err = s.SetGameStatus(ctx, key, rules.GameStatusRunning)
	require.Nil(t, err)

	// Pop game can find it.
	id, err = s.PopGameID(ctx)
	require.Nil(t, err)
	require.Equal(t, key, id)

	// Set game to error.
	err = s.SetGameStatus(ctx, key, rules.GameStatusError)
	require.Nil(t, err)
	g, err := s.GetGame(ctx, key)
	require.Nil(t, err)
	require.Equal(t, rules.GameStatusError, g.Status)

	// Cannot pop.
	id, err = s.PopGameID(ctx)
	if err == nil {
		require.NotEqual(t, key, id)
	}

	// Missing game.
	err = s.SetGameStatus(ctx, key+"-missing", rules.GameStatusRunning)
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
}

func testStoreGames(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, &pb.Game{
		ID: key, Status: rules.GameStatusRunning, Width: 20, Height: 30, StartLevel: 3, BorderWrap: true}, nil)
	require.Nil(t, err)
	g, err := s.GetGame(ctx, key)
	require.Nil(t, err)
	require.Equal(t, key, g.ID)
	require.Equal(t, int32(20), g.Width)
	require.Equal(t, int32(30), g.Height)
	require.Equal(t, int32(3), g.StartLevel)
	require.True(t, g.BorderWrap)

	// NotFound error thrown.
	_, err = s.GetGame(ctx, key+"-missing")
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))

	// Pop game can find it.
	id, err := s.PopGameID(ctx)
	require.Nil(t, err)
	require.Equal(t, key, id)

	// Lock test key, cannot pop.
	_, err = s.Lock(ctx, key, "")
	require.Nil(t, err)
	id, err = s.PopGameID(ctx)
	if err == nil {
		require.NotEqual(t, key, id)
	}

	// Done with it, keep it out of the queue for the next cases.
	require.NoError(t, s.SetGameStatus(ctx, key, rules.GameStatusComplete))
}

func testStoreGameFrames(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, &pb.Game{ID: key, Status: rules.GameStatusRunning}, nil)
	require.Nil(t, err)

	// Read game frames, too high offset.
	frames, err := s.ListGameFrames(ctx, key, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Read game frames, 0 offset.
	frames, err = s.ListGameFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Push game frames.
	for turn := int64(0); turn < 3; turn++ {
		err = s.PushGameFrame(ctx, key, &pb.GameFrame{
			Turn:   turn,
			Level:  2,
			Player: &pb.Snake{ID: rules.PlayerID, Body: []*pb.Point{{X: 1, Y: int32(turn)}}},
			Food:   &pb.Point{X: 4, Y: 4},
		})
		require.Nil(t, err)
	}

	// Read the game frames.
	frames, err = s.ListGameFrames(ctx, key, 2, 0)
	require.Nil(t, err)
	require.Equal(t, 2, len(frames))
	require.Equal(t, int64(0), frames[0].Turn)
	require.Equal(t, int64(1), frames[1].Turn)
	require.Equal(t, int32(2), frames[1].Level)
	require.Equal(t, &pb.Point{X: 1, Y: 1}, frames[1].Player.Head())
	require.Equal(t, &pb.Point{X: 4, Y: 4}, frames[1].Food)

	// Last frame.
	frames, err = s.ListGameFrames(ctx, key, 1, -1)
	require.Nil(t, err)
	require.Equal(t, 1, len(frames))
	require.Equal(t, int64(2), frames[0].Turn)

	// Read game frames that don't exist.
	frames, err = s.ListGameFrames(ctx, key+"-missing", 1, 0)
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
	require.Equal(t, 0, len(frames))

	// Read the game frames, too high offset.
	frames, err = s.ListGameFrames(ctx, key, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Push to a game that doesn't exist.
	err = s.PushGameFrame(ctx, key+"-missing", &pb.GameFrame{})
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
}

func testStoreCreateWithFrames(t *testing.T, s controller.Store) {
	ctx := context.Background()

	game, frames, err := rules.CreateInitialGame(&pb.CreateRequest{})
	require.NoError(t, err)
	require.NoError(t, s.CreateGame(ctx, game, frames))

	stored, err := s.ListGameFrames(ctx, game.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, frames[0].Player.Body, stored[0].Player.Body)
	require.Equal(t, frames[0].Food, stored[0].Food)
	require.True(t, stored[0].Paused)
}

func testStoreInputs(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, &pb.Game{ID: key, Status: rules.GameStatusRunning}, nil)
	require.Nil(t, err)

	// Nothing queued.
	inputs, err := s.PopInputs(ctx, key)
	require.Nil(t, err)
	require.Empty(t, inputs)

	// Inputs come back in order.
	require.NoError(t, s.PushInput(ctx, key, &pb.Input{Type: rules.InputToggle}))
	require.NoError(t, s.PushInput(ctx, key, &pb.Input{Type: rules.InputMove, Direction: pb.DirectionDown}))
	require.NoError(t, s.PushInput(ctx, key, &pb.Input{Type: rules.InputSettings, StartLevel: 4, BorderWrap: true}))

	inputs, err = s.PopInputs(ctx, key)
	require.Nil(t, err)
	require.Len(t, inputs, 3)
	require.Equal(t, rules.InputToggle, inputs[0].Type)
	require.Equal(t, pb.DirectionDown, inputs[1].Direction)
	require.Equal(t, int32(4), inputs[2].StartLevel)
	require.True(t, inputs[2].BorderWrap)

	// Drained.
	inputs, err = s.PopInputs(ctx, key)
	require.Nil(t, err)
	require.Empty(t, inputs)

	// Missing game.
	err = s.PushInput(ctx, key+"-missing", &pb.Input{Type: rules.InputToggle})
	require.Equal(t, controller.ErrNotFound, errors.Cause(err))
}

func testStoreConcurrentWriters(t *testing.T, s controller.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Create and fetch a game.
	err := s.CreateGame(ctx, &pb.Game{ID: key, Status: rules.GameStatusRunning}, nil)
	require.Nil(t, err)

	var ok uint32 // How many got the lock.
	var wg sync.WaitGroup
	wg.Add(20)

	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			if _, errl := s.Lock(ctx, key, ""); errl == nil {
				atomic.AddUint32(&ok, 1)
			}
		}()
	}

	wg.Wait()

	require.Equal(t, uint32(1), ok)
}

// Suite will execute the store testsuite. pretest runs before every case,
// stores that share state between cases use it to reset.
func Suite(t *testing.T, s controller.Store, pretest func()) {
	s = controller.InstrumentStore(s)
	t.Run("Lock", func(t *testing.T) { pretest(); testStoreLock(t, s) })
	t.Run("LockExpiry", func(t *testing.T) { pretest(); testStoreLockExpiry(t, s) })
	t.Run("Games", func(t *testing.T) { pretest(); testStoreGames(t, s) })
	t.Run("GameStatus", func(t *testing.T) { pretest(); testStoreGameStatus(t, s) })
	t.Run("GameFrames", func(t *testing.T) { pretest(); testStoreGameFrames(t, s) })
	t.Run("CreateWithFrames", func(t *testing.T) { pretest(); testStoreCreateWithFrames(t, s) })
	t.Run("Inputs", func(t *testing.T) { pretest(); testStoreInputs(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
