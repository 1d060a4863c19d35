package filestore

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ormenio/engine/controller"
	"github.com/ormenio/engine/rules"
	"github.com/stretchr/testify/require"
)

type mockReader struct {
	*bufio.Reader
}

func (m *mockReader) Close() error {
	return nil
}

func newMockReader(text string) *mockReader {
	return &mockReader{
		Reader: bufio.NewReader(strings.NewReader(text)),
	}
}

type failReader struct{}

func (f *failReader) ReadBytes(delimiter byte) ([]byte, error) {
	return nil, errors.New("FAIL")
}

func (f *failReader) Close() error {
	return errors.New("FAIL")
}

func fileOpener(files map[string]string) func(string) (reader, error) {
	return func(path string) (reader, error) {
		text, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return newMockReader(text), nil
	}
}

func withReader(t *testing.T, open func(string) (reader, error)) {
	prev := openFileReader
	openFileReader = open
	t.Cleanup(func() { openFileReader = prev })
}

func gameInfoTestJSON() string {
	info := toGameInfo(basicGame())
	infoJSON, _ := json.Marshal(info)
	return string(infoJSON) + "\n"
}

func framesTestJSON() string {
	var lines []string
	for _, f := range basicFrames() {
		j, _ := json.Marshal(f)
		lines = append(lines, string(j))
	}
	return strings.Join(lines, "\n") + "\n"
}

func testFiles(text string) map[string]string {
	return map[string]string{getFilePath("dir", "myid"): text}
}

func TestReadGameFramesBadReader(t *testing.T) {
	withReader(t, func(string) (reader, error) {
		return &failReader{}, nil
	})
	_, err := ReadGameFrames("dir", "myid")

	require.NotNil(t, err)
}

func TestReadGameFramesOpenReaderError(t *testing.T) {
	withReader(t, func(string) (reader, error) {
		return nil, errors.New("fail")
	})
	_, err := ReadGameFrames("dir", "myid")

	require.NotNil(t, err)
}

func TestReadGameFramesMissingFile(t *testing.T) {
	withReader(t, fileOpener(map[string]string{}))
	_, err := ReadGameFrames("dir", "myid")

	require.Equal(t, controller.ErrNotFound, err)
}

func TestReadGameFramesWithoutHeader(t *testing.T) {
	withReader(t, fileOpener(testFiles(framesTestJSON())))
	frames, err := ReadGameFrames("dir", "myid")

	require.NoError(t, err)
	require.Len(t, frames, 1, "first frame is in header spot and should be ignored")
}

func TestReadGameFrames(t *testing.T) {
	withReader(t, fileOpener(testFiles(gameInfoTestJSON()+framesTestJSON())))
	frames, err := ReadGameFrames("dir", "myid")

	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)
	require.Equal(t, rules.PlayerID, frames[0].Player.ID)
	require.Equal(t, rules.EnemyID, frames[0].Enemy.ID)
	require.Nil(t, frames[0].Death)
	require.NotNil(t, frames[1].Death)
}

func testGarbageEnding(t *testing.T, garbage string) {
	withReader(t, fileOpener(testFiles(gameInfoTestJSON()+framesTestJSON()+garbage)))
	frames, _ := ReadGameFrames("dir", "myid")

	require.Len(t, frames, 2, "3rd frame is invalid and should be ignored")
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)
}

func TestReadGameFramesPlusGarbage(t *testing.T) {
	testGarbageEnding(t, "...")
	testGarbageEnding(t, "{")
	testGarbageEnding(t, "{ foo }")
}

func TestReadGameFramesGarbageAfterHeader(t *testing.T) {
	withReader(t, fileOpener(testFiles(gameInfoTestJSON()+"\n\n{\n"+framesTestJSON())))
	frames, _ := ReadGameFrames("dir", "myid")

	require.Len(t, frames, 2, "garbage should be ignored")
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)
}

func TestReadGameFramesEmpty(t *testing.T) {
	withReader(t, fileOpener(testFiles(gameInfoTestJSON())))
	frames, err := ReadGameFrames("dir", "myid")

	require.NoError(t, err)
	require.Len(t, frames, 0)
}

func TestReadGameInfo(t *testing.T) {
	withReader(t, fileOpener(testFiles(gameInfoTestJSON()+framesTestJSON())))
	game, err := ReadGameInfo("dir", "myid")

	require.NoError(t, err)
	require.Equal(t, "myid", game.ID)
	require.Equal(t, rules.GameStatusStopped, game.Status)
	require.Equal(t, int32(10), game.Width)
	require.Equal(t, int32(2), game.StartLevel)
	require.True(t, game.BorderWrap)
}

func TestReadGameInfoEmptyFile(t *testing.T) {
	withReader(t, fileOpener(testFiles("")))
	_, err := ReadGameInfo("dir", "myid")

	require.Equal(t, controller.ErrNotFound, err)
}
