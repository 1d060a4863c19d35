package filestore

import (
	"encoding/json"
	"os"

	"github.com/ormenio/engine/controller/pb"
)

var openFileWriter = appendOnlyFileWriter

type writer interface {
	WriteString(s string) (int, error)
	Close() error
}

func requireSaveDir(directory string) error {
	return os.MkdirAll(directory, 0775)
}

func writeLine(w writer, data interface{}) error {
	j, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.WriteString(string(j) + "\n")
	return err
}

func toGameInfo(game *pb.Game) gameInfo {
	return gameInfo{
		ID:         game.ID,
		Width:      game.Width,
		Height:     game.Height,
		StartLevel: game.StartLevel,
		BorderWrap: game.BorderWrap,
		Created:    game.Created,
	}
}

func writeFrame(w writer, f *pb.GameFrame) error {
	return writeLine(w, f)
}

func writeGameInfo(w writer, game *pb.Game) error {
	info := toGameInfo(game)
	return writeLine(w, &info)
}

func appendOnlyFileWriter(directory, id string, mustCreate bool) (writer, error) {
	if err := requireSaveDir(directory); err != nil {
		return nil, err
	}

	path := getFilePath(directory, id)
	flags := os.O_APPEND | os.O_WRONLY | os.O_CREATE
	if mustCreate {
		flags |= os.O_EXCL
	}
	return os.OpenFile(path, flags, 0644)
}
