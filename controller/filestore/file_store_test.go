package filestore

import (
	"context"
	"errors"
	"os"
	"path"
	"testing"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/controller/testsuite"
	"github.com/ormenio/engine/rules"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSuite(t *testing.T) {
	testsuite.Suite(t, NewFileStore(t.TempDir()), func() {})
}

func TestFileStore(t *testing.T) {
	fs, w := testFileStore(t)
	frames := []*pb.GameFrame{basicFrames()[0]}
	err := fs.CreateGame(context.Background(), basicGame(), frames)
	require.NoError(t, err)

	game, err := fs.GetGame(context.Background(), "myid")
	require.NoError(t, err)
	require.Equal(t, basicGame(), game)

	err = fs.PushGameFrame(context.Background(), "myid", basicFrames()[1])
	require.NoError(t, err)

	newFrames, err := fs.ListGameFrames(context.Background(), "myid", 5, 0)
	require.NoError(t, err)
	require.Len(t, newFrames, 2)
	require.Equal(t, basicFrames(), newFrames)

	last, err := fs.ListGameFrames(context.Background(), "myid", 1, -1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, int64(2), last[0].Turn)

	err = fs.SetGameStatus(context.Background(), "myid", rules.GameStatusComplete)
	require.NoError(t, err)
	require.True(t, w.closed)

	game, err = fs.GetGame(context.Background(), "myid")
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusComplete, game.Status)
}

func TestFileStoreReplaysArchive(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs := NewFileStore(dir)
	require.NoError(t, fs.CreateGame(ctx, basicGame(), basicFrames()))
	require.NoError(t, fs.SetGameStatus(ctx, "myid", rules.GameStatusComplete))

	_, err := os.Stat(path.Join(dir, "myid.ormen"))
	require.NoError(t, err)

	// A fresh store only sees what is on disk.
	fresh := NewFileStore(dir)
	game, err := fresh.GetGame(ctx, "myid")
	require.NoError(t, err)
	require.Equal(t, rules.GameStatusStopped, game.Status)
	require.Equal(t, int32(15), game.Height)

	frames, err := fresh.ListGameFrames(ctx, "myid", 10, 0)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, basicFrames()[1].Death, frames[1].Death)
}

func TestCreateGameRefusesExistingArchive(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, NewFileStore(dir).CreateGame(ctx, basicGame(), nil))
	err := NewFileStore(dir).CreateGame(ctx, basicGame(), nil)
	require.NotNil(t, err)
}

func TestCreateGameHandlesWriteError(t *testing.T) {
	fs, w := testFileStore(t)
	w.err = errors.New("fail")
	frames := []*pb.GameFrame{basicFrames()[0]}
	err := fs.CreateGame(context.Background(), basicGame(), frames)
	require.NotNil(t, err)
}

func TestCreateGameHandlesOpenFileError(t *testing.T) {
	withWriter(t, func(string, string, bool) (writer, error) {
		return nil, errors.New("fail")
	})
	withReader(t, func(string) (reader, error) {
		return nil, errors.New("fail")
	})
	fs := NewFileStore("dir")
	frames := []*pb.GameFrame{basicFrames()[0]}
	err := fs.CreateGame(context.Background(), basicGame(), frames)
	require.NotNil(t, err)
}

func TestCreateGetGameFound(t *testing.T) {
	fs, _ := testFileStore(t)

	_, err := fs.GetGame(context.Background(), "notfound")
	require.Equal(t, controller.ErrNotFound, err)
}

func TestPushGameFrameInvalidGame(t *testing.T) {
	fs, _ := testFileStore(t)

	err := fs.PushGameFrame(context.Background(), "notfound", basicFrames()[1])
	require.NotNil(t, err)
}

func TestListGameFramesInvalidGame(t *testing.T) {
	fs, _ := testFileStore(t)

	_, err := fs.ListGameFrames(context.Background(), "notfound", 5, 0)
	require.NotNil(t, err)
}

func TestSetGameStatusInvalidGame(t *testing.T) {
	fs, _ := testFileStore(t)

	err := fs.SetGameStatus(context.Background(), "notfound", rules.GameStatusRunning)
	require.NotNil(t, err)
}

func TestPushInputInvalidGame(t *testing.T) {
	fs, _ := testFileStore(t)

	err := fs.PushInput(context.Background(), "notfound", &pb.Input{Type: rules.InputToggle})
	require.NotNil(t, err)
}

func TestPopGameID(t *testing.T) {
	fs, _ := testFileStore(t)
	ctx := context.Background()

	_, err := fs.PopGameID(ctx)
	require.Equal(t, controller.ErrNotFound, err)

	require.NoError(t, fs.CreateGame(ctx, basicGame(), nil))
	id, err := fs.PopGameID(ctx)
	require.NoError(t, err)
	require.Equal(t, "myid", id)

	_, err = fs.Lock(ctx, "myid", "")
	require.NoError(t, err)
	_, err = fs.PopGameID(ctx)
	require.Equal(t, controller.ErrNotFound, err)
}

func TestCloseClosesWriters(t *testing.T) {
	fs, w := testFileStore(t)
	require.NoError(t, fs.CreateGame(context.Background(), basicGame(), nil))

	closer, ok := fs.(interface{ Close() error })
	require.True(t, ok)
	require.NoError(t, closer.Close())
	require.True(t, w.closed)
}

func withWriter(t *testing.T, open func(string, string, bool) (writer, error)) {
	prev := openFileWriter
	openFileWriter = open
	t.Cleanup(func() { openFileWriter = prev })
}

func testFileStore(t *testing.T) (controller.Store, *mockWriter) {
	w := &mockWriter{}
	withWriter(t, func(string, string, bool) (writer, error) {
		return w, nil
	})
	withReader(t, fileOpener(map[string]string{}))
	return NewFileStore("dir"), w
}
